package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	apperrors "github.com/alexjbarnes/contact-sync/internal/errors"
	"github.com/alexjbarnes/contact-sync/internal/vcard"
)

// DeletedFolderName is the sub-folder, under the contacts folder,
// that orphaned notes are relocated into.
const DeletedFolderName = "Deleted"

// noticePrefix heads every user-facing notice.
const noticePrefix = "Contact sync"

// Action classifies what one remote record needs.
type Action int

const (
	// ActionSkip means the local note is already at the remote
	// version; no I/O beyond the read already performed.
	ActionSkip Action = iota

	// ActionCreate means no local note exists for the record's URL.
	ActionCreate

	// ActionUpdate means the remote version changed, or a rewrite-all
	// pass is in force.
	ActionUpdate
)

// Classify decides the action for one remote record against its local
// match. This is a pure decision function with no I/O; local is nil
// when no note carries the record's URL.
func Classify(local *LocalRecord, remote RemoteRecord, rewriteAll bool) Action {
	if local == nil {
		return ActionCreate
	}

	if rewriteAll || local.Record.Etag != remote.Etag {
		return ActionUpdate
	}

	return ActionSkip
}

// Options controls one pass.
type Options struct {
	// RewriteAll forces every paired record through the update path
	// regardless of etag match.
	RewriteAll bool `json:"rewriteAll"`
}

// Tally collects the records behind each outcome of one pass.
type Tally struct {
	Created  []RemoteRecord
	Modified []RemoteRecord
	Deleted  []RemoteRecord
	Skipped  []RemoteRecord
}

// Counts returns the four counters.
func (t *Tally) Counts() (created, modified, deleted, skipped int) {
	return len(t.Created), len(t.Modified), len(t.Deleted), len(t.Skipped)
}

// Result is what one pass hands back for the orchestrator to persist
// as the next pass's memory.
type Result struct {
	// UpdateData is the remote snapshot to remember: every record that
	// now has a matching local note (created, modified, or skipped).
	UpdateData []RemoteRecord

	// UsedSettings is the settings snapshot the pass ran under, with
	// the memory fields cleared.
	UsedSettings Settings

	Tally           Tally
	SettingsChanged bool
}

// Engine runs full reconciliation passes. It depends only on the
// DocumentStore, RemoteFetcher, and NoticeSink ports.
//
// Two passes must not run concurrently against the same folder; the
// caller is responsible for not re-invoking UpdateContacts while one
// pass is in flight.
type Engine struct {
	store   DocumentStore
	fetcher RemoteFetcher
	notices NoticeSink
	names   *NameAllocator
	errors  *ErrorReporter
	logger  *slog.Logger
}

// NewEngine creates an engine over the given ports.
func NewEngine(store DocumentStore, fetcher RemoteFetcher, notices NoticeSink, logger *slog.Logger) *Engine {
	return &Engine{
		store:   store,
		fetcher: fetcher,
		notices: notices,
		names:   NewNameAllocator(store),
		errors:  NewErrorReporter(store, logger),
		logger:  logger,
	}
}

// UpdateContacts runs one reconciliation pass: fetch the remote set,
// classify every record against the local notes, apply creates,
// updates, and renames, relocate orphaned notes, and report a tally.
// A drift between the settings and the previous pass's settings
// forces a rewrite-all pass.
//
// Pass-level failures (validation, folder setup, fetch) abort the
// pass and are reported; per-record failures are reported and skipped
// without aborting. The best-effort result is returned either way.
func (e *Engine) UpdateContacts(ctx context.Context, settings Settings, opts Options) Result {
	settingsChanged := settings.PreviousUpdateSettings != nil &&
		!settings.EqualPresentation(*settings.PreviousUpdateSettings)
	rewriteAll := opts.RewriteAll || settingsChanged

	notice := e.notices.Show(noticePrefix + ": updating contacts...")

	tally := &Tally{}

	if err := e.runPass(ctx, settings, rewriteAll, notice, tally); err != nil {
		e.logger.Error("contact update pass failed", slog.String("error", err.Error()))
		e.errors.Report(ctx, settings.Folder, "Error when running updateContacts", err, opts)
	}

	notice.Hide()
	e.reportSummary(tally, settingsChanged)

	return Result{
		UpdateData:      slices.Concat(tally.Created, tally.Modified, tally.Skipped),
		UsedSettings:    settings.Snapshot(),
		Tally:           *tally,
		SettingsChanged: settingsChanged,
	}
}

func (e *Engine) runPass(ctx context.Context, settings Settings, rewriteAll bool, notice Notice, tally *Tally) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validating settings: %w", err)
	}

	if err := e.ensureFolder(ctx, settings.Folder); err != nil {
		return fmt.Errorf("creating the %s folder: %w", settings.Folder, err)
	}

	records, err := e.fetcher.FetchContacts(ctx, settings.Username, settings.Password, settings.ServerURL)
	if err != nil {
		return fmt.Errorf("fetching contacts: %w", err)
	}

	records = FilterByGroups(records, settings.Groups)

	locals, err := e.loadLocalRecords(ctx, settings.Folder)
	if err != nil {
		return fmt.Errorf("loading local contacts: %w", err)
	}

	localByURL := make(map[string]*LocalRecord, len(locals))
	for i := range locals {
		localByURL[locals[i].Record.URL] = &locals[i]
	}

	prevByURL := make(map[string]RemoteRecord, len(settings.PreviousUpdateData))
	for _, r := range settings.PreviousUpdateData {
		prevByURL[r.URL] = r
	}

	e.logger.Info("reconciliation starting",
		slog.Int("remote", len(records)),
		slog.Int("local", len(locals)),
		slog.Bool("rewrite_all", rewriteAll),
	)

	for i, rec := range records {
		notice.SetMessage(fmt.Sprintf("%s: processing contact %d of %d", noticePrefix, i+1, len(records)))

		var prev *RemoteRecord
		if p, ok := prevByURL[rec.URL]; ok {
			prev = &p
		}

		e.processRecord(ctx, rec, localByURL[rec.URL], prev, rewriteAll, settings, tally)
	}

	e.moveDeletedContacts(ctx, locals, records, settings, tally)

	return nil
}

// processRecord applies the classified action for one remote record.
// Failures are reported with the record as context and do not abort
// the pass.
func (e *Engine) processRecord(ctx context.Context, rec RemoteRecord, local *LocalRecord, prev *RemoteRecord, rewriteAll bool, settings Settings, tally *Tally) {
	switch Classify(local, rec, rewriteAll) {
	case ActionCreate:
		if err := e.createContact(ctx, rec, settings); err != nil {
			e.errors.Report(ctx, settings.Folder, "Error trying to process contact", err, rec)
			return
		}

		tally.Created = append(tally.Created, rec)

	case ActionUpdate:
		if err := e.updateContact(ctx, rec, local, prev, settings); err != nil {
			e.errors.Report(ctx, settings.Folder, "Error trying to process contact", err, rec)
			return
		}

		tally.Modified = append(tally.Modified, rec)

	case ActionSkip:
		tally.Skipped = append(tally.Skipped, rec)
	}
}

// createContact writes a fresh note for a record with no local match.
func (e *Engine) createContact(ctx context.Context, rec RemoteRecord, settings Settings) error {
	if rec.Data == "" {
		return fmt.Errorf("%w: %s", apperrors.ErrNoRecordData, rec.URL)
	}

	fields := vcard.Parse(rec.Data)
	fullName := vcard.FullNameFromFields(fields)
	fm := BuildFrontmatter(fields, fullName, settings)

	path, err := e.names.Allocate(ctx, settings.Folder, SanitizeBaseName(fullName))
	if err != nil {
		return err
	}

	var body string
	if settings.IsNameHeading {
		body = headingFor(fullName)
	}

	if err := e.store.Create(ctx, path, body); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	encoded, err := rec.Encode()
	if err != nil {
		return err
	}

	err = e.store.ProcessFrontmatter(ctx, path, func(doc MutableFrontmatter) {
		applyFrontmatter(doc, fm)
		doc.Set(RecordKey, encoded)
	})
	if err != nil {
		return fmt.Errorf("writing frontmatter for %s: %w", path, err)
	}

	e.logger.Info("created contact", slog.String("path", path))

	return nil
}

// updateContact brings an existing note up to the new remote version:
// rename on display-name change, heading synchronization, then a
// key-level field merge that leaves user-owned keys untouched.
func (e *Engine) updateContact(ctx context.Context, rec RemoteRecord, local *LocalRecord, prev *RemoteRecord, settings Settings) error {
	if rec.Data == "" {
		return fmt.Errorf("%w: %s", apperrors.ErrNoRecordData, rec.URL)
	}

	fields := vcard.Parse(rec.Data)
	newName := vcard.FullNameFromFields(fields)
	oldName := local.Name
	path := local.Path

	if newName != oldName {
		newPath, err := e.names.Allocate(ctx, settings.Folder, SanitizeBaseName(newName))
		if err != nil {
			return err
		}

		if err := e.store.Rename(ctx, path, newPath); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", path, newPath, err)
		}

		e.logger.Info("renamed contact", slog.String("from", path), slog.String("to", newPath))

		path = newPath
	}

	// The comparison baseline is the previous pass: its settings for
	// rebuilding the old frontmatter, its heading policy for the body.
	// On the very first pass the heading defaults to present.
	prevSettings := settings
	prevHeading := true

	if ps := settings.PreviousUpdateSettings; ps != nil {
		prevSettings = *ps
		prevHeading = ps.IsNameHeading
	}

	if prevHeading != settings.IsNameHeading || (settings.IsNameHeading && newName != oldName) {
		err := e.store.ProcessBody(ctx, path, func(body string) string {
			return patchHeading(body, oldName, newName, prevHeading, settings.IsNameHeading)
		})
		if err != nil {
			return fmt.Errorf("patching heading in %s: %w", path, err)
		}
	}

	newFM := BuildFrontmatter(fields, newName, settings)

	prevData := local.Record.Data
	if prev != nil {
		prevData = prev.Data
	}

	prevFields := vcard.Parse(prevData)
	prevFM := BuildFrontmatter(prevFields, vcard.FullNameFromFields(prevFields), prevSettings)

	encoded, err := rec.Encode()
	if err != nil {
		return err
	}

	err = e.store.ProcessFrontmatter(ctx, path, func(doc MutableFrontmatter) {
		// Keys the previous pass produced but this one does not are
		// stale: excluded-key growth or a policy toggle. Everything
		// else in the live file is user-owned and must survive.
		for _, key := range prevFM.Keys() {
			if !newFM.Has(key) {
				doc.Delete(key)
			}
		}

		applyFrontmatter(doc, newFM)
		doc.Set(RecordKey, encoded)
	})
	if err != nil {
		return fmt.Errorf("merging frontmatter in %s: %w", path, err)
	}

	return nil
}

func applyFrontmatter(doc MutableFrontmatter, fm *Frontmatter) {
	for _, key := range fm.Keys() {
		value, _ := fm.Value(key)
		doc.Set(key, value)
	}
}

// loadLocalRecords reads every contact note in the folder. Notes
// without frontmatter or without the reserved record key are not
// contacts and are excluded entirely; a note whose frontmatter cannot
// be read is skipped with a warning so one bad file does not stop the
// whole pass.
func (e *Engine) loadLocalRecords(ctx context.Context, folder string) ([]LocalRecord, error) {
	listing, err := e.store.List(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	var locals []LocalRecord

	for _, path := range listing.Files {
		if !strings.HasSuffix(path, noteExtension) || strings.Contains(path, ErrorsFileName) {
			continue
		}

		fm, err := e.store.Frontmatter(ctx, path)
		if err != nil {
			e.logger.Warn("skipping note with unreadable frontmatter",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)

			continue
		}

		if fm == nil {
			continue
		}

		raw, ok := fm[RecordKey].(string)
		if !ok || PeekURL(raw) == "" {
			continue
		}

		rec, err := DecodeRecord(raw)
		if err != nil {
			e.logger.Warn("skipping note with unreadable record key",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)

			continue
		}

		name, _ := fm[keyName].(string)

		locals = append(locals, LocalRecord{
			Path:        path,
			Name:        name,
			Frontmatter: fm,
			Record:      rec,
		})
	}

	return locals, nil
}

// moveDeletedContacts relocates notes whose remote identity vanished
// from the fetched set into the deleted-items area, keeping their
// base names (suffixed on collision).
func (e *Engine) moveDeletedContacts(ctx context.Context, locals []LocalRecord, fetched []RemoteRecord, settings Settings, tally *Tally) {
	remoteURLs := make(map[string]bool, len(fetched))
	for _, r := range fetched {
		remoteURLs[r.URL] = true
	}

	var orphans []LocalRecord

	for _, l := range locals {
		if !remoteURLs[l.Record.URL] {
			orphans = append(orphans, l)
		}
	}

	if len(orphans) == 0 {
		return
	}

	deletedFolder := settings.Folder + "/" + DeletedFolderName

	if err := e.ensureFolder(ctx, deletedFolder); err != nil {
		e.errors.Report(ctx, settings.Folder, "Error trying to create the deleted items folder", err, nil)
		return
	}

	for _, orphan := range orphans {
		if err := e.moveDeletedContact(ctx, orphan, deletedFolder); err != nil {
			e.errors.Report(ctx, settings.Folder, "Error trying to move deleted contact", err, orphan.Record)
			continue
		}

		tally.Deleted = append(tally.Deleted, orphan.Record)
	}
}

func (e *Engine) moveDeletedContact(ctx context.Context, orphan LocalRecord, deletedFolder string) error {
	base := orphan.Path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}

	base = strings.TrimSuffix(base, noteExtension)

	dest, err := e.names.Allocate(ctx, deletedFolder, base)
	if err != nil {
		return err
	}

	if err := e.store.Rename(ctx, orphan.Path, dest); err != nil {
		return fmt.Errorf("moving %s to %s: %w", orphan.Path, dest, err)
	}

	e.logger.Info("moved deleted contact", slog.String("from", orphan.Path), slog.String("to", dest))

	return nil
}

// ensureFolder is an idempotent get-or-create.
func (e *Engine) ensureFolder(ctx context.Context, folder string) error {
	exists, err := e.store.FolderExists(ctx, folder)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return e.store.CreateFolder(ctx, folder)
}

// reportSummary emits the end-of-pass notice and log line.
func (e *Engine) reportSummary(tally *Tally, settingsChanged bool) {
	created, modified, deleted, skipped := tally.Counts()

	var b strings.Builder

	b.WriteString(noticePrefix + ":\n")

	if created > 0 {
		fmt.Fprintf(&b, "Created %d\n", created)
	}

	if modified > 0 {
		fmt.Fprintf(&b, "Modified %d\n", modified)
	}

	if deleted > 0 {
		fmt.Fprintf(&b, "Deleted %d\n", deleted)
	}

	if skipped > 0 {
		fmt.Fprintf(&b, "Skipped %d\n", skipped)
	}

	if created+modified+deleted == 0 {
		b.WriteString("Already up to date\n")
	}

	if settingsChanged {
		b.WriteString("All contacts were updated to reflect new settings")
	}

	e.notices.Show(b.String())

	e.logger.Info("update pass complete",
		slog.Int("created", created),
		slog.Int("modified", modified),
		slog.Int("deleted", deleted),
		slog.Int("skipped", skipped),
		slog.Bool("settings_changed", settingsChanged),
	)
}
