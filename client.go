package outagelog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Client keeps track of the current availability report at all times.
type Client interface {
	GetReport() Report
}

// Consumer receives messages from the outage-events queue. It is satisfied by
// the rmq package's consumer.
type Consumer interface {
	Recv(ctx context.Context) (<-chan amqp.Delivery, error)
}

// NewClient initializes a Client that tracks the availability summaries
// served by the outage-log service: it makes an initial HTTP request to the
// summary API, and thereafter it consumes from the outage-events queue,
// re-fetching the summaries whenever the log changes. Summaries are always
// recomputed server-side from the full record set, so a refetch per change is
// the correctness-preserving approach rather than incremental update.
// GetReport on the resulting client is thread-safe.
func NewClient(ctx context.Context, logger zerolog.Logger, serviceUrl string, consumer Consumer) (Client, error) {
	report, err := fetchReport(ctx, serviceUrl)
	if err != nil {
		return nil, err
	}

	c := &client{
		serviceUrl:    serviceUrl,
		currentReport: *report,
	}

	outageEvents, err := consumer.Recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init recv channel on outage-events consumer: %w", err)
	}

	// Refresh our snapshot any time we consume an event from the
	// outage-events queue
	go func() {
		done := false
		for !done {
			select {
			case <-ctx.Done():
				logger.Info().Msg("Consumer context canceled; availability client shutting down")
				done = true
			case d, ok := <-outageEvents:
				if ok {
					var ev Event
					if err := json.Unmarshal(d.Body, &ev); err != nil {
						logger.Error().Err(err).Msg("Failed to unmarshal event from outage-events; availability client shutting down")
						done = true
						break
					}
					c.handleEvent(ctx, &ev, logger)
				} else {
					logger.Info().Msg("Channel is closed; availability client shutting down")
					done = true
				}
			}
		}
	}()

	return c, nil
}

// fetchReport requests the current summaries from the outage-log service.
func fetchReport(ctx context.Context, serviceUrl string) (*Report, error) {
	url := serviceUrl + "/summary"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got response %d from %s", res.StatusCode, url)
	}
	var report Report
	if err := json.NewDecoder(res.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode response body from %s: %w", url, err)
	}
	return &report, nil
}

type client struct {
	serviceUrl    string
	currentReport Report
	mu            sync.RWMutex
}

func (c *client) GetReport() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentReport
}

func (c *client) handleEvent(ctx context.Context, ev *Event, logger zerolog.Logger) {
	report, err := fetchReport(ctx, c.serviceUrl)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to refresh availability report")
		return
	}

	c.mu.Lock()
	c.currentReport = *report
	c.mu.Unlock()

	entry := logger.Info().Str("eventType", string(ev.Type)).Str("recordId", ev.RecordId.String())
	if report.YTD != nil {
		entry = entry.
			Float64("ytdAvailability", report.YTD.AvailabilityPercent).
			Str("band", AvailabilityBand(report.YTD.AvailabilityPercent))
	}
	entry.Msg("Availability report refreshed")
}
