// Package artifacts keeps track of the outputs of a build pipeline per artifact type: which
// tasks produce them, where their files land, and which tasks a consumer must wait for.
package artifacts

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/zerr"
)

// Holder owns the artifact records of one configuration unit, typically one variant.
//
// Records live in a slot-indexed table and output locations in a second one; handles
// returned to callers keep slot numbers instead of pointers into either table.
type Holder struct {
	id         string
	projectDir string
	buildDir   func() string
	issues     ports.IssueReporter

	mu      sync.RWMutex
	records []*record
	index   map[domain.ArtifactType]int

	locMu     sync.RWMutex
	locations []domain.Location

	finals sync.Map // domain.ArtifactType -> *FinalView
}

// NewHolder creates a Holder.
// id namespaces output paths and must be unique among holders sharing a build directory.
// buildDir is called whenever an absolute output path is resolved. Raw relative paths
// resolve against projectDir.
func NewHolder(id, projectDir string, buildDir func() string, issues ports.IssueReporter) *Holder {
	return &Holder{
		id:         id,
		projectDir: projectDir,
		buildDir:   buildDir,
		issues:     issues,
		index:      make(map[domain.ArtifactType]int),
	}
}

// ID returns the holder identifier.
func (h *Holder) ID() string {
	return h.id
}

// TaskName returns prefix followed by the capitalized holder identifier.
func (h *Holder) TaskName(prefix string) string {
	r, size := utf8.DecodeRuneInString(h.id)
	if r == utf8.RuneError {
		return prefix
	}
	return prefix + string(unicode.ToUpper(r)) + h.id[size:]
}

// CreateBuildableArtifact registers files for t. Sources may be raw paths, other file sets,
// or outputs of another holder; their build dependencies are carried over. A non-zero
// producer is added as a build dependency.
//
// The returned file set is also what GetArtifactFiles returns until the next registration.
func (h *Holder) CreateBuildableArtifact(
	t domain.ArtifactType,
	op domain.OperationType,
	producer domain.TaskPath,
	sources ...domain.Source,
) (domain.FileSet, error) {
	entry, err := h.createOutput(t, op, producer, func(_ *record, base []domain.Source) (*domain.FileCollection, *producerRef, error) {
		entry := domain.NewFileCollection(h.projectDir, append(base, sources...)...).WithBuiltBy(producer)
		return entry, nil, nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateArtifactFile registers a single file output for t, named fileName under the
// default location of the type.
func (h *Holder) CreateArtifactFile(
	t domain.ArtifactType,
	op domain.OperationType,
	producer domain.TaskPath,
	fileName string,
) (*Output, error) {
	return h.CreateArtifactFileAt(t, op, producer, h.defaultLocation(t, fileName))
}

// CreateArtifactFileAt registers a single file output for t at location, relative to the
// build directory.
func (h *Holder) CreateArtifactFileAt(
	t domain.ArtifactType,
	op domain.OperationType,
	producer domain.TaskPath,
	location string,
) (*Output, error) {
	if t.Kind != domain.KindFile {
		err := zerr.With(zerr.Wrap(domain.ErrKindMismatch, "cannot create a file for a directory artifact"), "artifact", t.Name)
		return nil, zerr.With(err, "producer", producer.String())
	}
	return h.createFileOrDirectory(t, op, producer, location)
}

// CreateDirectory registers a single directory output for t, named dirName under the
// default location of the type. An empty dirName defaults to "out".
func (h *Holder) CreateDirectory(
	t domain.ArtifactType,
	op domain.OperationType,
	producer domain.TaskPath,
	dirName string,
) (*Output, error) {
	if dirName == "" {
		dirName = domain.DefaultOutputName
	}
	return h.CreateDirectoryAt(t, op, producer, h.defaultLocation(t, dirName))
}

// CreateDirectoryAt registers a single directory output for t at location, relative to the
// build directory.
func (h *Holder) CreateDirectoryAt(
	t domain.ArtifactType,
	op domain.OperationType,
	producer domain.TaskPath,
	location string,
) (*Output, error) {
	if t.Kind != domain.KindDirectory {
		err := zerr.With(zerr.Wrap(domain.ErrKindMismatch, "cannot create a directory for a file artifact"), "artifact", t.Name)
		return nil, zerr.With(err, "producer", producer.String())
	}
	return h.createFileOrDirectory(t, op, producer, location)
}

func (h *Holder) createFileOrDirectory(
	t domain.ArtifactType,
	op domain.OperationType,
	label domain.TaskPath,
	requested string,
) (*Output, error) {
	// Superseded outputs are keyed by producer name, so an anonymous producer would land on
	// the default location of the type.
	if label.IsZero() {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidProducer, "file and directory outputs need a producer"), "artifact", t.Name)
	}
	var out *Output
	_, err := h.createOutput(t, op, label, func(rec *record, base []domain.Source) (*domain.FileCollection, *producerRef, error) {
		path, err := h.planLocation(rec, t, label, requested)
		if err != nil {
			return nil, nil, err
		}
		slot := h.allocate(t.Kind, path)
		out = &Output{holder: h, slot: slot, producer: label}

		entry := domain.NewFileCollection(h.projectDir, append(base, domain.FromSet(out))...).WithBuiltBy(label)
		return entry, &producerRef{slot: slot, label: label, fileName: filepath.Base(requested)}, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// composeFunc builds the new entry of rec. base holds the sources the operation keeps from
// the existing output.
type composeFunc func(rec *record, base []domain.Source) (*domain.FileCollection, *producerRef, error)

// createOutput is the only place records are appended to. The composition, the
// duplicate-initial check and the append happen in one critical section.
func (h *Holder) createOutput(
	t domain.ArtifactType,
	op domain.OperationType,
	label domain.TaskPath,
	compose composeFunc,
) (*domain.FileCollection, error) {
	if err := op.Validate(); err != nil {
		return nil, zerr.With(err, "artifact", t.Name)
	}

	h.mu.Lock()
	rec := h.recordLocked(t)
	var base []domain.Source
	switch op {
	case domain.OperationInitial:
		if rec.size() > 0 {
			existing, prev := rec.last(), rec.lastProducer
			h.mu.Unlock()
			return nil, duplicateInitialError(t, label, existing, prev)
		}
	case domain.OperationAppend:
		if rec.size() > 0 {
			base = []domain.Source{domain.FromSet(rec.last())}
		}
	case domain.OperationTransform:
	}
	hadOutput := rec.size() > 0

	entry, p, err := compose(rec, base)
	if err != nil {
		h.mu.Unlock()
		return nil, zerr.With(err, "artifact", t.Name)
	}
	rec.add(entry, p)
	h.mu.Unlock()

	if op == domain.OperationTransform && !hadOutput {
		h.report(domain.Issue{
			Severity: domain.SeverityWarning,
			Holder:   h.id,
			Artifact: t.Name,
			Message:  fmt.Sprintf("%s transforms %s, which has no producer yet", displayLabel(label), t.Name),
		})
	}
	return entry, nil
}

func duplicateInitialError(t domain.ArtifactType, label domain.TaskPath, existing domain.FileSet, prev *producerRef) error {
	owner := "an unnamed producer"
	if prev != nil {
		owner = prev.label.String()
	}
	paths := existing.Files()
	msg := fmt.Sprintf(
		"task %s is expecting to be the initial producer of %s, but %s already registered itself as a producer at these locations:\n%s",
		displayLabel(label), t.Name, owner, strings.Join(paths, "\n"),
	)
	err := zerr.With(zerr.Wrap(domain.ErrDuplicateInitialProducer, msg), "artifact", t.Name)
	err = zerr.With(err, "producer", label.String())
	return zerr.With(err, "existing_paths", strings.Join(paths, ","))
}

func displayLabel(label domain.TaskPath) string {
	if label.IsZero() {
		return "<unnamed>"
	}
	return label.String()
}

// recordLocked returns the record of t, creating it if needed. h.mu must be write-locked.
func (h *Holder) recordLocked(t domain.ArtifactType) *record {
	if i, ok := h.index[t]; ok {
		return h.records[i]
	}
	h.records = append(h.records, newRecord(t))
	h.index[t] = len(h.records) - 1
	return h.records[len(h.records)-1]
}

// lookup returns the record of t without creating it.
func (h *Holder) lookup(t domain.ArtifactType) *record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i, ok := h.index[t]; ok {
		return h.records[i]
	}
	return nil
}

// vivify returns the record of t, creating an empty one if needed.
func (h *Holder) vivify(t domain.ArtifactType) *record {
	if rec := h.lookup(t); rec != nil {
		return rec
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recordLocked(t)
}

// latest returns the current output of t without creating a record.
func (h *Holder) latest(t domain.ArtifactType) domain.FileSet {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i, ok := h.index[t]; ok {
		return h.records[i].last()
	}
	return domain.EmptyFileSet()
}

// GetArtifactFiles returns the output of t as it is now. Later registrations do not
// change the returned file set. An unknown type yields an empty file set.
func (h *Holder) GetArtifactFiles(t domain.ArtifactType) domain.FileSet {
	rec := h.vivify(t)

	h.mu.RLock()
	defer h.mu.RUnlock()
	return rec.last()
}

// GetFinalArtifactFiles returns the view of the final output of t. There is exactly one
// view per type and holder.
func (h *Holder) GetFinalArtifactFiles(t domain.ArtifactType) *FinalView {
	if v, ok := h.finals.Load(t); ok {
		return v.(*FinalView) //nolint:forcetypeassert // only *FinalView is stored
	}
	v, _ := h.finals.LoadOrStore(t, &FinalView{holder: h, artifact: t})
	return v.(*FinalView) //nolint:forcetypeassert // only *FinalView is stored
}

// GetOptionalFinalArtifactFiles returns the final view of t, or an empty file set when
// nothing was registered for t.
func (h *Holder) GetOptionalFinalArtifactFiles(t domain.ArtifactType) domain.FileSet {
	if !h.HasArtifact(t) {
		return domain.EmptyFileSet()
	}
	return h.GetFinalArtifactFiles(t)
}

// GetFinalArtifactFilesIfPresent returns the final view of t, or nil when nothing was
// registered for t.
func (h *Holder) GetFinalArtifactFilesIfPresent(t domain.ArtifactType) *FinalView {
	if !h.HasArtifact(t) {
		return nil
	}
	return h.GetFinalArtifactFiles(t)
}

// HasArtifact reports whether the holder has a record for t.
func (h *Holder) HasArtifact(t domain.ArtifactType) bool {
	return h.lookup(t) != nil
}

// GetHistory returns every output registered for t, oldest first.
func (h *Holder) GetHistory(t domain.ArtifactType) []domain.FileSet {
	rec := h.vivify(t)

	h.mu.RLock()
	defer h.mu.RUnlock()

	res := make([]domain.FileSet, len(rec.history))
	for i, entry := range rec.history {
		res[i] = entry
	}
	return res
}

// Types returns the artifact types with a record, sorted by name.
func (h *Holder) Types() []domain.ArtifactType {
	h.mu.RLock()
	defer h.mu.RUnlock()

	res := make([]domain.ArtifactType, 0, len(h.records))
	for _, rec := range h.records {
		res = append(res, rec.artifact)
	}
	slices.SortFunc(res, func(a, b domain.ArtifactType) int { return strings.Compare(a.Name, b.Name) })
	return res
}

// ArtifactFilename returns the lowercase type name suffixed with the number of outputs
// registered so far.
func (h *Holder) ArtifactFilename(t domain.ArtifactType) string {
	rec := h.vivify(t)

	h.mu.RLock()
	defer h.mu.RUnlock()
	return t.DirName() + strconv.Itoa(rec.size())
}

// CreateFile returns the absolute path of a file produced by taskName for t.
func (h *Holder) CreateFile(t domain.ArtifactType, taskName, fileName string) string {
	return filepath.Join(t.OutputDir(h.buildDir()), h.id, taskName, fileName)
}

// CreateMultiTypeFile returns the absolute path of a file produced by taskName that is not
// tied to a single artifact type.
func (h *Holder) CreateMultiTypeFile(taskName, fileName string) string {
	return filepath.Join(
		h.buildDir(),
		domain.CategoryIntermediates.OutputPath(),
		domain.MultiTypesDirName,
		taskName,
		fileName,
	)
}

func (h *Holder) report(issue domain.Issue) {
	if h.issues != nil {
		h.issues.Report(issue)
	}
}
