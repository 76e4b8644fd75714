package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KevinW1998/nightjetter/domain/business/classifier"
	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
	"github.com/KevinW1998/nightjetter/utils"
)

const (
	writerStr              = "report-writer"
	DefaultNoDataLiteral   = "NoData"
	DefaultTimestampFormat = "2006-01-02 15:04:05.000000"
	reportExtension        = ".csv"
	pricesPrefix           = "prices_"
)

// Config of the report writer
// + OutputDir: directory holding every report file. Created when missing
// + NoDataLiteral: value written for a day without data or a category not offered that day
// + TimestampFormat: layout of the run timestamp in availability rows
type Config struct {
	OutputDir       string
	NoDataLiteral   string
	TimestampFormat string
}

// Key identifies the reports of a route, passenger count and start date.
// Successive runs with the same key append to the same files.
type Key struct {
	Route      string
	Passengers int
	Start      time.Time
}

// Name base file name of the key: <route>_<passengers>PAX_<start>
func (k Key) Name() string {
	return fmt.Sprintf("%s_%dPAX_%s", sanitize(k.Route), k.Passengers, utils.FormatDate(k.Start))
}

// Summary files touched by one write
type Summary struct {
	AvailabilityFile string
	PriceFiles       []string
	CreatedFiles     int
}

// Writer persists collected windows as append only, semicolon delimited report files
type Writer struct {
	config Config
}

func NewWriter(config Config) *Writer {
	if config.NoDataLiteral == "" {
		config.NoDataLiteral = DefaultNoDataLiteral
	}
	if config.TimestampFormat == "" {
		config.TimestampFormat = DefaultTimestampFormat
	}
	return &Writer{
		config: config,
	}
}

// AvailabilityPath path of the availability report of a key
func (w *Writer) AvailabilityPath(key Key) string {
	return filepath.Join(w.config.OutputDir, key.Name()+reportExtension)
}

// PricePath path of the price report of a category in a refund tier
func (w *Writer) PricePath(key Key, category string, tier classifier.RefundTier) string {
	fileName := fmt.Sprintf("%s%s-%s-%s%s", pricesPrefix, key.Name(), sanitize(category), tier.Tag(), reportExtension)
	return filepath.Join(w.config.OutputDir, fileName)
}

// Header header row of a window: an empty first column followed by every sampled day
func Header(window *timeseries.Window) []string {
	header := []string{""}
	for _, day := range window.Dates() {
		header = append(header, utils.FormatDate(day))
	}
	return header
}

// AvailabilityRow run timestamp followed by the level of every day
func (w *Writer) AvailabilityRow(window *timeseries.Window, timestamp time.Time) []string {
	row := []string{timestamp.Format(w.config.TimestampFormat)}
	for _, sample := range window.Samples() {
		level, ok := sample.Level()
		if !ok {
			row = append(row, w.config.NoDataLiteral)
			continue
		}
		row = append(row, level.String())
	}
	return row
}

// PriceRow empty first column followed by the price of the category on every day
func (w *Writer) PriceRow(window *timeseries.Window, category string, tier classifier.RefundTier) []string {
	row := []string{""}
	for _, sample := range window.Samples() {
		price, ok := sample.Price(tier, category)
		if !ok {
			row = append(row, w.config.NoDataLiteral)
			continue
		}
		row = append(row, utils.FormatPrice(price))
	}
	return row
}

// Write appends one row for the window to every report of the key: three price reports per category seen in
// the window, then the availability report. Files are created with the window's header on first use.
func (w *Writer) Write(key Key, window *timeseries.Window, timestamp time.Time) (Summary, error) {
	if window == nil || window.Len() == 0 {
		return Summary{}, ErrEmptyWindow
	}
	if err := os.MkdirAll(w.config.OutputDir, 0755); err != nil {
		return Summary{}, fmt.Errorf("error creating output directory %s: %w", w.config.OutputDir, err)
	}

	var summary Summary
	header := Header(window)

	for _, category := range window.Categories() {
		for _, tier := range classifier.Tiers() {
			path := w.PricePath(key, category, tier)
			if err := w.appendWithHeader(path, header, w.PriceRow(window, category, tier), &summary); err != nil {
				return summary, err
			}
			summary.PriceFiles = append(summary.PriceFiles, path)
		}
	}

	path := w.AvailabilityPath(key)
	if err := w.appendWithHeader(path, header, w.AvailabilityRow(window, timestamp), &summary); err != nil {
		return summary, err
	}
	summary.AvailabilityFile = path

	log.Infof("[component: %s][report: %s][status: OK] appended %d price reports and the availability report (%d new files)",
		writerStr, key.Name(), len(summary.PriceFiles), summary.CreatedFiles)
	return summary, nil
}

func (w *Writer) appendWithHeader(path string, header []string, row []string, summary *Summary) error {
	created, err := InitFile(path, header)
	if err != nil {
		return err
	}
	if created {
		summary.CreatedFiles += 1
		log.Debugf("[component: %s][file: %s][status: OK] report created", writerStr, path)
	}
	return AppendRow(path, row)
}

// sanitize keeps a name usable as a single path component
func sanitize(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
