package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KevinW1998/nightjetter/collector"
	"github.com/KevinW1998/nightjetter/domain/business/classifier"
	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
	"github.com/KevinW1998/nightjetter/domain/entities/station"
	"github.com/KevinW1998/nightjetter/report"
	"github.com/KevinW1998/nightjetter/sampler"
	"github.com/KevinW1998/nightjetter/tracker/config"
)

const trackerStr = "tracker"

// BookingPlatform booking operations used by a run
type BookingPlatform interface {
	sampler.BookingService
	FindStation(ctx context.Context, name string) (station.Station, error)
}

// WindowPublisher publishes the samples of a collected window
type WindowPublisher interface {
	PublishWindow(ctx context.Context, runID string, route string, window *timeseries.Window) error
}

// RunObserver metrics of a run
type RunObserver interface {
	sampler.OutcomeObserver
	ObserveWindow(route string, window *timeseries.Window)
}

// Runner protocols every configured route, one after the other
type Runner struct {
	runID     string
	platform  BookingPlatform
	writer    *report.Writer
	publisher WindowPublisher
	observer  RunObserver
	location  *time.Location
	now       func() time.Time
}

func NewRunner(runID string, platform BookingPlatform, writer *report.Writer, publisher WindowPublisher, observer RunObserver, location *time.Location) *Runner {
	return &Runner{
		runID:     runID,
		platform:  platform,
		writer:    writer,
		publisher: publisher,
		observer:  observer,
		location:  location,
		now:       time.Now,
	}
}

func (r *Runner) getLogMessage(route string, method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][run: %s][route: %s][method: %s][status: ERROR] %s: %s", trackerStr, r.runID, route, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][run: %s][route: %s][method: %s][status: OK] %s", trackerStr, r.runID, route, method, message)
}

// Run protocols the routes in order. The first failing route aborts the run.
func (r *Runner) Run(ctx context.Context, routes []config.RouteConfig) error {
	for _, route := range routes {
		if err := r.RunRoute(ctx, route); err != nil {
			return fmt.Errorf("error protocolling route %s: %w", route.Name(), err)
		}
	}
	return nil
}

// RunRoute resolves both stations, collects the route window, appends it to the reports and publishes its samples
func (r *Runner) RunRoute(ctx context.Context, route config.RouteConfig) error {
	routeName := route.Name()

	start, err := route.Start(r.location)
	if err != nil {
		return err
	}
	passengers, err := route.BuildPassengers()
	if err != nil {
		return err
	}

	from, err := r.platform.FindStation(ctx, route.From)
	if err != nil {
		log.Error(r.getLogMessage(routeName, "RunRoute", "error resolving origin", err))
		return err
	}
	to, err := r.platform.FindStation(ctx, route.To)
	if err != nil {
		log.Error(r.getLogMessage(routeName, "RunRoute", "error resolving destination", err))
		return err
	}
	log.Debug(r.getLogMessage(routeName, "RunRoute", fmt.Sprintf("stations resolved: %s (%s) -> %s (%s)", from.Name, from.ID, to.Name, to.ID), nil))

	daySampler := sampler.NewDaySampler(r.platform, classifier.NewClassifier(classifier.DefaultLevelTable()), from, to, passengers, r.observer)
	window, err := collector.NewCollector(daySampler, from.Name, to.Name).Collect(ctx, start, route.AdvanceDays)
	if err != nil {
		log.Error(r.getLogMessage(routeName, "RunRoute", "error collecting window", err))
		return err
	}

	key := report.Key{Route: routeName, Passengers: len(passengers), Start: start}
	summary, err := r.writer.Write(key, window, r.now())
	if err != nil {
		log.Error(r.getLogMessage(routeName, "RunRoute", "error writing reports", err))
		return err
	}

	if r.observer != nil {
		r.observer.ObserveWindow(routeName, window)
	}

	if r.publisher != nil {
		if err := r.publisher.PublishWindow(ctx, r.runID, routeName, window); err != nil {
			log.Error(r.getLogMessage(routeName, "RunRoute", "error publishing samples", err))
			return err
		}
	}

	log.Info(r.getLogMessage(routeName, "RunRoute", fmt.Sprintf("%d of %d days with data, %d categories, availability report %s",
		window.CountAvailable(), window.Len(), len(window.Categories()), summary.AvailabilityFile), nil))
	return nil
}
