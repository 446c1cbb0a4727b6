package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

const DefaultURL = "https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/owid-covid-data.csv"

type Loader interface {
	Load(ctx context.Context, url string) (*Dataset, error)
}

// Fetches datasets over HTTP.
type HTTPLoader struct {
	client  *http.Client
	timeout time.Duration
}

// A zero timeout means no timeout beyond the one on the context given to Load.
func NewHTTPLoader(client *http.Client, timeout time.Duration) HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return HTTPLoader{client: client, timeout: timeout}
}

func (loader HTTPLoader) Load(ctx context.Context, url string) (*Dataset, error) {
	if loader.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, loader.timeout)
		defer cancel()
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to create request for dataset at '%s'", url)
	}
	req.Header.Set("Accept", "text/csv")

	res, err := loader.client.Do(req)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to fetch dataset from '%s'", url)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("dataset request to '%s' returned status %s", url, res.Status)
	}

	dataset, err := Parse(url, res.Body)
	if err != nil {
		return nil, wrap.Errorf(err, "failed to parse dataset from '%s'", url)
	}

	fetchDuration.Observe(time.Since(startTime).Seconds())
	log.Infof(
		"Loaded %d observations for %d countries in %s",
		dataset.Len(),
		len(dataset.countries),
		time.Since(startTime).Round(time.Millisecond),
	)

	return dataset, nil
}
