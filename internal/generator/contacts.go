package generator

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmehdipour/churn-insights/internal/dataset"
	"github.com/jmehdipour/churn-insights/internal/model"
)

// contactSalt decorrelates the contact stream from the record stream and
// keeps the faker seed away from 0, which gofakeit treats as "random".
const contactSalt uint64 = 0x9e3779b97f4a7c15

// ContactDirectory maps customer ids to display contacts.
type ContactDirectory struct {
	byID map[string]model.Contact
}

// NewContactDirectory builds one contact per record of ds, in record order,
// from a faker seeded by seed.
func NewContactDirectory(seed int64, ds *dataset.Dataset) *ContactDirectory {
	s := uint64(seed) ^ contactSalt
	if s == 0 {
		s = contactSalt
	}
	f := gofakeit.New(s)

	dir := &ContactDirectory{byID: make(map[string]model.Contact, ds.Len())}
	for i := 0; i < ds.Len(); i++ {
		id := ds.At(i).CustomerID
		first, last := f.FirstName(), f.LastName()
		dir.byID[id] = model.Contact{
			CustomerID: id,
			Name:       first + " " + last,
			Email:      f.Email(),
			Phone:      f.Phone(),
		}
	}
	return dir
}

func (d *ContactDirectory) Lookup(customerID string) (model.Contact, bool) {
	c, ok := d.byID[customerID]
	return c, ok
}

func (d *ContactDirectory) Len() int { return len(d.byID) }
