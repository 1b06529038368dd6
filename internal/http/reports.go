package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmehdipour/churn-insights/internal/content"
	"github.com/jmehdipour/churn-insights/internal/dataset"
	"github.com/jmehdipour/churn-insights/internal/generator"
	"github.com/jmehdipour/churn-insights/internal/model"
	"github.com/jmehdipour/churn-insights/internal/provider"
	echo "github.com/labstack/echo/v4"
)

type customerRow struct {
	model.CustomerRecord
	TenureGroup string        `json:"tenure_group"`
	Contact     model.Contact `json:"contact"`
}

// fail maps dataset and generation errors onto status codes.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, dataset.ErrUnknownField), errors.Is(err, dataset.ErrUnknownValue):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		c.Logger().Errorf("dataset unavailable: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "dataset unavailable"})
	}
}

func summaryHandler(prov *provider.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		ds, err := prov.Dataset(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"meta":    ds.Meta(),
			"summary": ds.Summary(),
		})
	}
}

func churnByHandler(prov *provider.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		field := dataset.FieldContractType
		if raw := strings.TrimSpace(c.QueryParam("by")); raw != "" {
			field = dataset.CategoricalField(raw)
		}

		ds, err := prov.Dataset(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}
		groups, err := ds.Breakdown(field)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"field":   field,
			"overall": ds.ChurnRateOverall(),
			"groups":  groups,
		})
	}
}

func distributionHandler(prov *provider.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		ds, err := prov.Dataset(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}
		dist := ds.Distribution()
		return c.JSON(http.StatusOK, map[string]int{
			"retained": dist[model.ChurnNo],
			"churned":  dist[model.ChurnYes],
		})
	}
}

func averageHandler(prov *provider.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		field := dataset.NumericField(strings.TrimSpace(c.QueryParam("field")))

		ds, err := prov.Dataset(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}
		avg, err := ds.Average(field)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"field":   field,
			"average": avg,
		})
	}
}

const maxPageLimit = 1000

// listCustomersHandler is the detailed analysis view: any categorical field
// can be used as an exact-match query filter. limit defaults to 50 and is
// clamped to 1000; malformed limit or offset values fall back to the default.
func listCustomersHandler(prov *provider.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 50
		offset := 0
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = min(n, maxPageLimit)
			}
		}
		if v := c.QueryParam("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		snap, err := prov.Get(c.Request().Context())
		if err != nil {
			return fail(c, err)
		}

		view := snap.Dataset
		for _, f := range dataset.CategoricalFields {
			raw := strings.TrimSpace(c.QueryParam(f.String()))
			if raw == "" {
				continue
			}
			if view, err = view.Where(f, raw); err != nil {
				return fail(c, err)
			}
		}

		page := view.Page(offset, limit)
		rows := make([]customerRow, 0, len(page))
		for _, r := range page {
			rows = append(rows, customerRow{
				CustomerRecord: r,
				TenureGroup:    dataset.TenureBandOf(r.Tenure).Label,
				Contact:        snap.Contact(r.CustomerID),
			})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"limit":      limit,
			"offset":     offset,
			"total":      view.Len(),
			"count":      len(rows),
			"churn_rate": view.ChurnRateOverall(),
			"results":    rows,
		})
	}
}

// riskHandler explains the churn probability of a hypothetical customer.
func riskHandler(prov *provider.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		contract, ok := model.ParseContractType(c.QueryParam("contract_type"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid contract_type"})
		}
		payment, ok := model.ParsePaymentMethod(c.QueryParam("payment_method"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payment_method"})
		}
		tenure, err := strconv.Atoi(c.QueryParam("tenure"))
		if err != nil || tenure < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid tenure"})
		}
		charges, err := strconv.ParseFloat(c.QueryParam("monthly_charges"), 64)
		if err != nil || charges < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid monthly_charges"})
		}

		rules := prov.Params().Risk
		raw, p := generator.RiskScore(rules, contract, payment, tenure, charges)
		return c.JSON(http.StatusOK, map[string]any{
			"raw_score":   raw,
			"probability": p,
			"cap":         rules.Cap,
		})
	}
}

func sqlHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"query": strings.TrimSpace(content.SQLExample)})
	}
}

func insightsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"insights":        content.Insights,
			"recommendations": content.Recommendations,
		})
	}
}
