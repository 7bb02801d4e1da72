package adb

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"debloat/internal/application"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

const defaultChunkSize = 50

// Source implements ports.PackageSource by shelling out to adb
type Source struct {
	bin       string
	catalog   ports.PackageCatalog
	chunkSize int
	log       *logrus.Logger
}

// Ensure Source implements PackageSource
var _ ports.PackageSource = (*Source)(nil)

// Option configures the Source
type Option func(*Source)

// WithCatalog sets the classification catalog consulted per enumerated package
func WithCatalog(catalog ports.PackageCatalog) Option {
	return func(s *Source) {
		s.catalog = catalog
	}
}

// WithChunkSize sets how many packages are delivered per chunk
func WithChunkSize(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithLogger sets the debug logger. By default log output is discarded so
// the TUI's alternate screen stays clean.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Source) {
		s.log = log
	}
}

// NewSource creates an adb-backed package source
func NewSource(bin string, opts ...Option) *Source {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Source{
		bin:       bin,
		chunkSize: defaultChunkSize,
		log:       discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Devices lists attached devices via `adb devices -l`
func (s *Source) Devices(ctx context.Context) ([]ports.Device, error) {
	out, err := exec.CommandContext(ctx, s.bin, "devices", "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w", adbError(err))
	}
	return parseDevices(string(out)), nil
}

// Enumerate starts one enumeration of the device. The query and per-chunk
// classification run on their own goroutine; all results flow through the
// returned channel, which is closed after the terminal notification.
func (s *Source) Enumerate(ctx context.Context, deviceID string) (<-chan ports.Notification, error) {
	if _, err := exec.LookPath(s.bin); err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH", application.ErrSourceUnavailable, s.bin)
	}

	ch := make(chan ports.Notification)
	go func() {
		defer close(ch)
		s.enumerate(ctx, deviceID, ch)
	}()
	return ch, nil
}

func (s *Source) enumerate(ctx context.Context, deviceID string, ch chan<- ports.Notification) {
	send := func(n ports.Notification) bool {
		select {
		case ch <- n:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(ports.Progress{Status: "Querying package manager..."}) {
		return
	}

	out, err := exec.CommandContext(ctx, s.bin, "-s", deviceID, "shell", "pm", "list", "packages").Output()
	if err != nil {
		s.log.WithField("device", deviceID).Warnf("pm list packages: %v", err)
		send(ports.Progress{Err: fmt.Sprintf("pm list packages: %v", adbError(err))})
		return
	}

	ids := parsePackageList(string(out))
	if len(ids) == 0 {
		send(ports.Progress{Err: "package manager returned no packages"})
		return
	}

	s.log.WithField("device", deviceID).Debugf("enumerated %d packages", len(ids))
	if !send(ports.Progress{
		Status:   fmt.Sprintf("Classifying %d packages...", len(ids)),
		Expected: len(ids),
	}) {
		return
	}

	// Classification is the slow part, so it is chunked: the view can render
	// each batch while the next one is still being looked up.
	delivered := 0
	for start := 0; start < len(ids); start += s.chunkSize {
		end := min(start+s.chunkSize, len(ids))
		pkgs := s.classify(ids[start:end])
		delivered += len(pkgs)
		if !send(ports.Chunk{Packages: pkgs, TotalSoFar: delivered}) {
			return
		}
	}

	if !send(ports.Progress{Status: fmt.Sprintf("%d packages", delivered), Complete: true}) {
		return
	}
	send(ports.Done{Total: delivered})
}

// classify builds package records for a batch of IDs, consulting the catalog
// for known names and categories. Unknown packages default to Expert: a
// package nobody has classified takes expertise to judge.
func (s *Source) classify(ids []string) []domain.Package {
	pkgs := make([]domain.Package, 0, len(ids))
	for _, id := range ids {
		p := domain.Package{
			ID:       id,
			Name:     displayName(id),
			Category: domain.CategoryExpert,
		}
		if s.catalog != nil {
			if entry, err := s.catalog.Lookup(id); err == nil && entry != nil {
				if entry.Name != "" {
					p.Name = entry.Name
				}
				if entry.Category != domain.CategoryUnknown {
					p.Category = entry.Category
				}
			}
		}
		pkgs = append(pkgs, p)
	}
	return pkgs
}

// Uninstall removes a package for the current user
func (s *Source) Uninstall(ctx context.Context, deviceID, packageID string) error {
	out, err := exec.CommandContext(ctx, s.bin, "-s", deviceID, "shell", "pm", "uninstall", "--user", "0", packageID).CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return &application.UninstallError{DeviceID: deviceID, PackageID: packageID, Reason: adbError(err).Error()}
	}
	if !strings.Contains(text, "Success") {
		return &application.UninstallError{DeviceID: deviceID, PackageID: packageID, Reason: text}
	}
	s.log.WithField("device", deviceID).Infof("uninstalled %s", packageID)
	return nil
}

// adbError unwraps an ExitError so stderr output reaches the user
func adbError(err error) error {
	if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("%s", strings.TrimSpace(string(exitErr.Stderr)))
	}
	return err
}
