package jobid_test

import (
	"fmt"

	"github.com/crawlkit/jobident/jobid"
)

func ExampleDerive() {
	params := jobid.Params{
		Keyword:           jobid.Set("iphone air"),
		Platform:          jobid.Set("x"),
		PostStartDatetime: jobid.Set("2025-09-16T03:22:05.23181Z"),
		PostEndDatetime:   jobid.Set("2025-12-15T03:22:05.23181Z"),
	}

	fmt.Println(jobid.Derive(params, "job"))
	// Output: job-1ebf06cf6f5c2e5b
}

func ExampleDeriveFromMap() {
	keyword := "iphone air"
	platform := "x"

	// Explicit nulls and omitted keys are the same canonical state, so both
	// shapes derive the same identifier.
	withNull := map[string]*string{
		"keyword":  &keyword,
		"platform": &platform,
		"label":    nil,
	}
	omitted := map[string]*string{
		"keyword":  &keyword,
		"platform": &platform,
	}

	fmt.Println(jobid.DeriveFromMap(withNull, "job"))
	fmt.Println(jobid.DeriveFromMap(omitted, "job"))
	// Output:
	// job-1fa8e54bdd03216b
	// job-1fa8e54bdd03216b
}

func ExampleCheckPrefix() {
	err := jobid.CheckPrefix("jobs/daily")
	fmt.Println(err)
	// Output: prefix contains path separator: "jobs/daily"
}
