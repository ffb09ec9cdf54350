// Package session runs the two-pass de-identification workflow.
//
// A Session owns one loaded table and everything carried between the passes.
// It is not safe for concurrent use; give each user their own Session.
package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v2"
	"github.com/ukaji3/xlsdeid/pkg/deid"
	"github.com/ukaji3/xlsdeid/pkg/deid/match"
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"go.uber.org/zap"
)

// Loader reads a source (file path or table name) into a table.
type Loader interface {
	Load(source string) (*models.Table, error)
}

// Writer writes a table to path.
type Writer interface {
	Write(t *models.Table, path string) error
}

// Session holds the state of one de-identification workflow.
type Session struct {
	id     string
	opts   deid.Options
	norm   match.Normalization
	loader Loader
	writer Writer
	log    *zap.Logger

	state        State
	source       string
	table        *models.Table
	ids          *match.IdentifyingStrings
	pass1        []models.NameMatch
	record       *models.RemovalRecord
	pass2        []models.OverlapMatch
	pass2Removed []string
	output       string
}

// New creates an empty session. A nil logger disables logging.
func New(opts deid.Options, loader Loader, writer Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		opts:   opts,
		norm:   opts.Normalization(),
		loader: loader,
		writer: writer,
		log:    logger.With(zap.String("session", id)),
		ids:    match.NewIdentifyingStrings(opts.InitialIdentifyingStrings()...),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current workflow state.
func (s *Session) State() State { return s.state }

// Source returns the loaded source, or "" when empty.
func (s *Session) Source() string { return s.source }

// Table returns the current table, or nil when empty.
// The returned table shares cell storage with the session and must not be modified.
func (s *Session) Table() *models.Table {
	if s.table == nil {
		return nil
	}
	return &models.Table{
		SheetName: s.table.SheetName,
		Columns:   append([]models.Column(nil), s.table.Columns...),
	}
}

// Record returns the pass one removal record, or nil before pass one removal.
func (s *Session) Record() *models.RemovalRecord { return s.record }

// PassOne returns the latest pass one matches.
func (s *Session) PassOne() []models.NameMatch { return s.pass1 }

// PassTwo returns the latest pass two matches.
func (s *Session) PassTwo() []models.OverlapMatch { return s.pass2 }

// Load reads source and replaces any previous table.
// Matches and the removal record are discarded; identifying strings are kept.
// On failure the session is unchanged and the error is a *deid.LoadError.
func (s *Session) Load(source string) error {
	t, err := s.loader.Load(source)
	if err == nil {
		err = validateTable(t)
	}
	if err != nil {
		var le *deid.LoadError
		if !errors.As(err, &le) {
			err = deid.NewLoadError(source, err)
		}
		s.log.Warn("load failed", zap.String("source", source), zap.Error(err))
		return err
	}

	s.clear()
	s.source = source
	s.table = t
	s.state = StateLoaded
	s.log.Info("loaded",
		zap.String("source", source),
		zap.String("sheet", t.SheetName),
		zap.Int("columns", len(t.Columns)),
		zap.Int("rows", t.RowCount()),
	)
	return nil
}

func validateTable(t *models.Table) error {
	if t == nil || len(t.Columns) == 0 {
		return deid.ErrEmptyTable
	}
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: %q", deid.ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Reset discards all state and restores the initial identifying strings.
func (s *Session) Reset() {
	s.clear()
	s.ids = match.NewIdentifyingStrings(s.opts.InitialIdentifyingStrings()...)
	s.log.Info("reset")
}

func (s *Session) clear() {
	s.state = StateEmpty
	s.source = ""
	s.table = nil
	s.pass1 = nil
	s.record = nil
	s.pass2 = nil
	s.pass2Removed = nil
	s.output = ""
}

// IdentifyingStrings returns the identifying strings in insertion order.
func (s *Session) IdentifyingStrings() []string {
	return s.ids.Values()
}

// AddIdentifyingString adds v to the identifying strings.
// It reports false if v is blank or already present.
// Pending pass one matches are recomputed.
func (s *Session) AddIdentifyingString(v string) bool {
	if !s.ids.Add(v) {
		return false
	}
	s.log.Debug("identifying string added", zap.String("value", v))
	s.refreshPassOne()
	return true
}

// RemoveIdentifyingString removes v from the identifying strings.
// It reports false if v was not present.
// Pending pass one matches are recomputed.
func (s *Session) RemoveIdentifyingString(v string) bool {
	if !s.ids.Remove(v) {
		return false
	}
	s.log.Debug("identifying string removed", zap.String("value", v))
	s.refreshPassOne()
	return true
}

func (s *Session) refreshPassOne() {
	if s.state == StatePass1Matched {
		s.pass1 = match.Names(s.table.ColumnNames(), s.ids.Values())
	}
}

// MatchPassOne flags columns whose names contain an identifying string.
// An empty result is valid.
func (s *Session) MatchPassOne() ([]models.NameMatch, error) {
	if !s.state.in(StateLoaded, StatePass1Matched) {
		return nil, deid.NewStateError("pass one match", s.state.String())
	}

	s.pass1 = match.Names(s.table.ColumnNames(), s.ids.Values())
	s.state = StatePass1Matched
	s.log.Info("pass one matched",
		zap.Strings("identifying", s.ids.Values()),
		zap.Strings("columns", models.NameMatchColumns(s.pass1)),
	)
	return s.pass1, nil
}

// ConfirmPassOne removes the given columns and records their distinct values.
// Any column may be named, not only matched ones; an empty list removes nothing.
// If a column is missing the session is unchanged and the error is a *deid.ColumnNotFoundError.
func (s *Session) ConfirmPassOne(columns []string) (*models.RemovalRecord, error) {
	if !s.state.in(StateLoaded, StatePass1Matched) {
		return nil, deid.NewStateError("pass one removal", s.state.String())
	}

	cols, err := s.resolve(columns)
	if err != nil {
		return nil, err
	}

	record := capture(s.table, cols)
	s.table = s.table.Drop(cols)
	s.record = record
	s.state = StatePass1Removed
	s.log.Info("pass one removed",
		zap.Strings("columns", cols),
		zap.Int("remaining", len(s.table.Columns)),
	)
	return record, nil
}

// resolve checks that every name is a column of the current table.
// It returns the distinct names in table order.
func (s *Session) resolve(columns []string) ([]string, error) {
	want := set.From(columns)
	for _, c := range columns {
		if s.table.Index(c) < 0 {
			return nil, deid.NewColumnNotFoundError(c, s.table.ColumnNames())
		}
	}
	out := make([]string, 0, len(columns))
	for _, name := range s.table.ColumnNames() {
		if want.Contains(name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// capture records the distinct non-null values of the named columns.
func capture(t *models.Table, cols []string) *models.RemovalRecord {
	record := &models.RemovalRecord{
		Columns: cols,
		Values:  make(map[string][]string, len(cols)),
	}
	for _, name := range cols {
		col, _ := t.Column(name)
		vals := match.Distinct(col.Values, match.Normalization{}).Slice()
		sort.Strings(vals)
		record.Values[name] = vals
	}
	return record
}

// MatchPassTwo flags remaining columns whose values overlap any value captured in pass one.
// Each match names the removed columns the overlapping values came from.
// An empty result is valid.
func (s *Session) MatchPassTwo() ([]models.OverlapMatch, error) {
	if !s.state.in(StatePass1Removed, StatePass2Matched) {
		return nil, deid.NewStateError("pass two match", s.state.String())
	}

	known := set.New[string](0)
	bySource := make(map[string]*set.Set[string], len(s.record.Columns))
	for _, name := range s.record.Columns {
		vals := set.New[string](len(s.record.Values[name]))
		for _, v := range s.record.Values[name] {
			vals.Insert(s.norm.Normalize(v))
		}
		bySource[name] = vals
		known.InsertSet(vals)
	}

	matches := match.Values(s.table.Columns, known, s.norm)
	for i := range matches {
		for _, name := range s.record.Columns {
			if anyIn(bySource[name], matches[i].Values) {
				matches[i].Sources = append(matches[i].Sources, name)
			}
		}
	}

	s.pass2 = matches
	s.state = StatePass2Matched
	s.log.Info("pass two matched",
		zap.Int("known_values", known.Size()),
		zap.Strings("columns", models.OverlapMatchColumns(matches)),
	)
	return matches, nil
}

func anyIn(s *set.Set[string], values []string) bool {
	for _, v := range values {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// ConfirmPassTwo removes the given columns from the reduced table.
// Validation and removal follow ConfirmPassOne.
func (s *Session) ConfirmPassTwo(columns []string) error {
	if !s.state.in(StatePass1Removed, StatePass2Matched) {
		return deid.NewStateError("pass two removal", s.state.String())
	}

	cols, err := s.resolve(columns)
	if err != nil {
		return err
	}

	s.table = s.table.Drop(cols)
	s.pass2Removed = cols
	s.state = StateDone
	s.log.Info("pass two removed",
		zap.Strings("columns", cols),
		zap.Int("remaining", len(s.table.Columns)),
	)
	return nil
}

// DefaultOutputName returns the suggested output name for the loaded source.
func (s *Session) DefaultOutputName() string {
	if s.source == "" {
		return ""
	}
	return deid.DefaultOutputName(s.source)
}

// Write emits the current table to the named file and returns the path written.
// A name equal to the input's name is prefixed so the input is never overwritten.
// Failures are returned as a *deid.WriteError and leave the session unchanged,
// so the call can be retried with another name.
func (s *Session) Write(name string) (string, error) {
	if !s.state.in(StatePass1Removed, StatePass2Matched, StateDone) {
		return "", deid.NewStateError("write", s.state.String())
	}

	path := deid.OutputName(s.source, name)
	if path == "" {
		return "", deid.NewWriteError(name, deid.ErrEmptyOutputName)
	}

	if err := s.writer.Write(s.table, path); err != nil {
		var we *deid.WriteError
		if !errors.As(err, &we) {
			err = deid.NewWriteError(path, err)
		}
		s.log.Warn("write failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	s.output = path
	s.log.Info("written",
		zap.String("path", path),
		zap.Int("columns", len(s.table.Columns)),
		zap.Int("rows", s.table.RowCount()),
	)
	return path, nil
}

// Preview returns the first rows of the current table, or nil when empty.
func (s *Session) Preview() *models.Table {
	if s.table == nil {
		return nil
	}
	return s.table.Head(s.opts.PreviewLimit())
}

// PreviewColumns returns the first rows of the named columns of the current table.
func (s *Session) PreviewColumns(columns []string) (*models.Table, error) {
	if s.table == nil {
		return nil, deid.NewStateError("preview", s.state.String())
	}
	cols, err := s.resolve(columns)
	if err != nil {
		return nil, err
	}
	return s.table.Select(cols).Head(s.opts.PreviewLimit()), nil
}

// Report summarizes the session. Captured and overlapping cell values are
// left out unless includeValues is set.
func (s *Session) Report(includeValues bool) *models.Report {
	r := &models.Report{
		SessionID:          s.id,
		Source:             s.source,
		State:              s.state.String(),
		IdentifyingStrings: s.ids.Values(),
		PassOne:            s.pass1,
		PassTwoRemoved:     s.pass2Removed,
		Output:             s.output,
	}
	if s.table != nil {
		r.SheetName = s.table.SheetName
		r.Columns = s.table.ColumnNames()
		r.Rows = s.table.RowCount()
	}
	if s.record != nil {
		r.Removal = &models.RemovalRecord{Columns: s.record.Columns}
		if includeValues {
			r.Removal.Values = s.record.Values
		}
	}
	for _, m := range s.pass2 {
		if !includeValues {
			m.Values = nil
		}
		r.PassTwo = append(r.PassTwo, m)
	}
	return r
}
