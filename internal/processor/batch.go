package processor

import (
	"net/http"
	"sync"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/tofix"

	"github.com/rs/zerolog/log"
)

type job struct {
	Collection config.Collection
	Index      int
}

type result struct {
	Report Report
	Index  int
}

// ValidateAll loads and validates collections on a bounded worker pool.
// Reports are returned in the order of cols.
func ValidateAll(client *http.Client, v *tofix.Validator, cols []config.Collection, concurrency int) []Report {
	if concurrency <= 0 {
		concurrency = 1
	}

	jobs := make(chan job, len(cols))
	results := make(chan result, len(cols))

	go func() {
		for i, c := range cols {
			jobs <- job{Collection: c, Index: i}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- result{Report: process(client, v, j.Collection), Index: j.Index}
			}
		}()
	}
	wg.Wait()
	close(results)

	reports := make([]Report, len(cols))
	for res := range results {
		reports[res.Index] = res.Report
	}

	return reports
}

func process(client *http.Client, v *tofix.Validator, c config.Collection) Report {
	src, err := Load(client, c)
	if err != nil {
		log.Error().
			Err(err).
			Str("collection", c.Name).
			Msg("Failed to load collection")

		return Report{Name: c.Name, Origin: src.Origin, LoadError: err.Error()}
	}

	return Validate(v, src)
}
