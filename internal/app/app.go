// Package app implements the application layer for ledger.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/ledger/internal/engine/artifacts"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.ReportStore
	logger       ports.Logger
	issues       ports.IssueReporter
	telemetry    ports.Telemetry
	resolver     ports.InputResolver
	inspector    ports.OutputInspector
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.ReportStore,
	log ports.Logger,
	issues ports.IssueReporter,
	telemetry ports.Telemetry,
	resolver ports.InputResolver,
	inspector ports.OutputInspector,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		logger:       log,
		issues:       issues,
		telemetry:    telemetry,
		resolver:     resolver,
		inspector:    inspector,
		out:          os.Stdout,
	}
}

// WithOutput sets the writer plans and reports are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// PlanOptions configuration for the Plan method.
type PlanOptions struct {
	ConfigPath string
	// Variants restricts planning to the named variants. Empty means every declared variant.
	Variants []string
	// ReportDir overrides the directory reports are written to.
	ReportDir string
	// Parallelism bounds the number of variants configured at once. Zero means unbounded.
	Parallelism int
}

// VariantPlan is the outcome of configuring one variant.
type VariantPlan struct {
	Variant string
	// Order lists the variant's tasks in execution order.
	Order  []domain.TaskPath
	Holder *artifacts.Holder
	Report domain.Report
	// ReportChanged is false when the persisted report already had the same content.
	ReportChanged bool
}

// Plan loads the pipeline, configures the selected variants concurrently, persists one
// report per variant and prints the result. Variants that fail to configure are left out
// of the returned plans and reported through an error wrapping ErrPlanFailed.
func (a *App) Plan(ctx context.Context, opts PlanOptions) ([]VariantPlan, error) {
	pipeline, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	variants, err := selectVariants(pipeline, opts.Variants)
	if err != nil {
		return nil, err
	}

	store := a.store
	if opts.ReportDir != "" {
		store = store.At(opts.ReportDir)
	}

	// A failing variant must not cancel its siblings, so the group does not share a context.
	results := make([]VariantPlan, len(variants))
	errs := make([]error, len(variants))
	var g errgroup.Group
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for i, variant := range variants {
		g.Go(func() error {
			plan, err := a.planVariant(ctx, pipeline, variant, store)
			if err != nil {
				errs[i] = zerr.With(zerr.Wrap(err, "failed to configure variant"), "variant", variant)
				return nil
			}
			results[i] = plan
			return nil
		})
	}
	_ = g.Wait()

	plans := make([]VariantPlan, 0, len(variants))
	var failed []error
	for i := range variants {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		plans = append(plans, results[i])
	}

	if err := a.render(plans, store); err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return plans, errors.Join(append([]error{domain.ErrPlanFailed}, failed...)...)
	}
	return plans, nil
}

func (a *App) planVariant(
	ctx context.Context,
	pipeline *domain.Pipeline,
	variant string,
	store ports.ReportStore,
) (VariantPlan, error) {
	if err := ctx.Err(); err != nil {
		return VariantPlan{}, err
	}
	_, vertex := a.telemetry.Record(ctx, "configure "+variant)

	plan, err := configureVariant(pipeline, variant, a.issues, a.resolver)
	if err != nil {
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(err)
		return VariantPlan{}, err
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("ordered %d tasks", len(plan.Order)))

	data, err := artifacts.MarshalReport(plan.Report)
	if err != nil {
		vertex.Complete(err)
		return VariantPlan{}, err
	}
	plan.ReportChanged, err = store.Put(variant, data)
	if err != nil {
		vertex.Complete(err)
		return VariantPlan{}, zerr.Wrap(err, "failed to store artifacts report")
	}
	if !plan.ReportChanged {
		vertex.Cached()
	}
	vertex.Complete(nil)

	a.logger.Info("configured variant", "variant", variant, "tasks", len(plan.Order))
	return plan, nil
}

func selectVariants(pipeline *domain.Pipeline, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return pipeline.Variants, nil
	}
	selected := make([]string, 0, len(requested))
	for _, v := range requested {
		if !slices.Contains(pipeline.Variants, v) {
			err := zerr.With(zerr.Wrap(domain.ErrUnknownVariant, "variant is not declared by the pipeline"), "variant", v)
			return nil, zerr.With(err, "project", pipeline.Project)
		}
		if !slices.Contains(selected, v) {
			selected = append(selected, v)
		}
	}
	return selected, nil
}

// ReportOptions configuration for the ShowReport method.
type ReportOptions struct {
	// ConfigPath names the pipeline whose custom artifact types the report may use.
	// A missing file falls back to the built-in types.
	ConfigPath string
	// Verify checks that every recorded file exists and prints its fingerprint.
	Verify bool
}

// ShowReport parses a persisted report and prints every artifact type's history.
// With Verify set it fails with ErrMissingOutputs when a recorded file is absent.
func (a *App) ShowReport(ctx context.Context, path string, opts ReportOptions) error {
	catalog, err := a.catalog(opts.ConfigPath)
	if err != nil {
		return err
	}

	//nolint:gosec // path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open report"), "path", path)
	}
	defer func() { _ = f.Close() }()

	report, err := artifacts.ReadReport(f, catalog)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	if !opts.Verify {
		return a.renderReport(report, nil)
	}

	statuses, err := a.verify(ctx, report)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	if err := a.renderReport(report, statuses); err != nil {
		return err
	}

	missing := 0
	for _, s := range statuses {
		if !s.Exists {
			missing++
		}
	}
	if missing > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrMissingOutputs, "report lists files that do not exist"), "missing", missing)
		return zerr.With(err, "path", path)
	}
	a.logger.Info("verified artifact files", "files", len(statuses))
	return nil
}

// verify inspects every distinct file of the report.
func (a *App) verify(ctx context.Context, report domain.Report) (map[string]domain.OutputStatus, error) {
	statuses := make(map[string]domain.OutputStatus)
	for _, t := range report.Types() {
		for _, entry := range report[t] {
			for _, f := range entry.Files {
				if _, ok := statuses[f]; ok {
					continue
				}
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				status, err := a.inspector.Inspect(f)
				if err != nil {
					return nil, zerr.With(zerr.Wrap(err, "failed to inspect artifact file"), "artifact", t.Name)
				}
				statuses[f] = status
			}
		}
	}
	return statuses, nil
}

func (a *App) catalog(configPath string) (*domain.Catalog, error) {
	if configPath != "" {
		pipeline, err := a.configLoader.Load(configPath)
		switch {
		case err == nil:
			return pipeline.Catalog, nil
		case !errors.Is(err, domain.ErrConfigReadFailed):
			return nil, zerr.Wrap(err, "failed to load configuration")
		}
	}
	return domain.NewCatalog()
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	ReportDir  string
	Reports    bool
	Build      bool
}

// Clean removes persisted reports and, when asked, the pipeline's build directory.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name), "path", path)
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Reports {
		dir := a.store.Dir()
		if options.ReportDir != "" {
			dir = options.ReportDir
		}
		remove(dir, "artifact reports")
	}

	if options.Build {
		pipeline, err := a.configLoader.Load(options.ConfigPath)
		if err != nil {
			return errors.Join(errs, zerr.Wrap(err, "failed to load configuration"))
		}
		remove(pipeline.BuildDir, "build directory")
	}

	return errs
}
