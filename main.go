package main

import "github.com/jmehdipour/churn-insights/cmd"

func main() {
	cmd.Execute()
}
