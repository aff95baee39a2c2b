package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/registry"
)

// Upload is one file of an import batch. Open is called at most once.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// searchColumns maps a sort column name to the value it sorts by.
var searchColumns = map[string]func(domain.SearchHit) string{
	"name":      func(h domain.SearchHit) string { return h.Name },
	"id":        func(h domain.SearchHit) string { return h.ID },
	"phone":     func(h domain.SearchHit) string { return h.Phone },
	"org":       func(h domain.SearchHit) string { return h.Org },
	"truck":     func(h domain.SearchHit) string { return h.Truck },
	"trailer":   func(h domain.SearchHit) string { return h.Trailer },
	"extra":     func(h domain.SearchHit) string { return h.Extra },
	"file_date": func(h domain.SearchHit) string { return h.FileDate },
}

// RegistryService stores uploaded registry files and searches their records.
type RegistryService struct {
	store       *StateStore
	logger      *slog.Logger
	now         func() time.Time
	loc         *time.Location
	maxFiles    int
	concurrency int
}

// NewRegistryService constructs a RegistryService. At most maxFiles files are
// accepted per batch and at most concurrency of them are read at once.
func NewRegistryService(store *StateStore, logger *slog.Logger, now func() time.Time, loc *time.Location, maxFiles, concurrency int) *RegistryService {
	return &RegistryService{
		store:       store,
		logger:      logger,
		now:         now,
		loc:         loc,
		maxFiles:    maxFiles,
		concurrency: concurrency,
	}
}

// Import reads and parses every upload, then appends all files that produced
// records in a single state write. A file that cannot be read or parsed gets
// an error in the report and does not stop the others.
// Returns domain.ErrTooManyFiles, without reading anything, when the batch is
// larger than the configured maximum.
func (s *RegistryService) Import(ctx context.Context, uploads []Upload) (domain.ImportReport, error) {
	if len(uploads) == 0 {
		return domain.ImportReport{}, fmt.Errorf("service.RegistryService.Import: %w: no files uploaded", domain.ErrValidation)
	}
	if len(uploads) > s.maxFiles {
		return domain.ImportReport{}, fmt.Errorf("service.RegistryService.Import: %w: got %d, max %d",
			domain.ErrTooManyFiles, len(uploads), s.maxFiles)
	}

	now := s.now().In(s.loc)
	reports := make([]domain.FileImport, len(uploads))
	files := make([]*domain.RegistryFile, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, up := range uploads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = domain.FileImport{FileName: up.Name}
			f, err := s.readFile(up, now)
			if err != nil {
				reports[i].Error = err.Error()
				s.logger.WarnContext(gctx, "registry file rejected", "file", up.Name, "error", err)
				return nil
			}
			reports[i].Kind = f.Kind
			reports[i].Records = len(f.Data)
			if len(f.Data) == 0 {
				reports[i].Error = "no records found"
				s.logger.WarnContext(gctx, "registry file has no records", "file", up.Name, "kind", f.Kind)
				return nil
			}
			files[i] = &f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ImportReport{}, fmt.Errorf("service.RegistryService.Import: %w", err)
	}

	report := domain.ImportReport{Files: reports}
	var batch []domain.RegistryFile
	for i, f := range files {
		if f == nil {
			continue
		}
		id := f.ID
		report.Files[i].FileID = &id
		report.Imported += len(f.Data)
		batch = append(batch, *f)
	}
	if len(batch) == 0 {
		return report, nil
	}

	_, err := s.store.Update(ctx, func(st *domain.State) error {
		st.RegistryFiles = append(st.RegistryFiles, batch...)
		return nil
	})
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("service.RegistryService.Import: %w", err)
	}
	s.logger.InfoContext(ctx, "registry files imported", "files", len(batch), "records", report.Imported)
	return report, nil
}

// readFile opens, decodes, and parses a single upload.
func (s *RegistryService) readFile(up Upload, now time.Time) (domain.RegistryFile, error) {
	if !strings.EqualFold(filepath.Ext(up.Name), ".csv") {
		return domain.RegistryFile{}, fmt.Errorf("only .csv files are supported")
	}
	rc, err := up.Open()
	if err != nil {
		return domain.RegistryFile{}, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return domain.RegistryFile{}, fmt.Errorf("read: %w", err)
	}
	text, err := registry.Decode(b)
	if err != nil {
		return domain.RegistryFile{}, err
	}
	return registry.Import(text, up.Name, now), nil
}

// ListFiles returns every stored file without its records, in upload order.
func (s *RegistryService) ListFiles(ctx context.Context) ([]domain.RegistryFileSummary, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RegistryService.ListFiles: %w", err)
	}
	out := make([]domain.RegistryFileSummary, 0, len(st.RegistryFiles))
	for _, f := range st.RegistryFiles {
		out = append(out, f.Summary())
	}
	return out, nil
}

// SetActive includes or excludes a file from search.
// Returns domain.ErrNotFound if no file has that ID.
func (s *RegistryService) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.RegistryFileSummary, error) {
	var out domain.RegistryFileSummary
	_, err := s.store.Update(ctx, func(st *domain.State) error {
		i := fileIndex(st.RegistryFiles, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.RegistryFiles[i].IsActive = active
		out = st.RegistryFiles[i].Summary()
		return nil
	})
	if err != nil {
		return domain.RegistryFileSummary{}, fmt.Errorf("service.RegistryService.SetActive: %w", err)
	}
	return out, nil
}

// Delete removes a file and all of its records.
// Returns domain.ErrNotFound if no file has that ID.
func (s *RegistryService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.store.Update(ctx, func(st *domain.State) error {
		i := fileIndex(st.RegistryFiles, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.RegistryFiles = slices.Delete(st.RegistryFiles, i, i+1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.RegistryService.Delete: %w", err)
	}
	return nil
}

// Search returns records of active files whose fields contain q.Text,
// ignoring case. Results are sorted by q.SortColumn when set and capped at
// the MaxSearchResults setting.
// Returns domain.ErrValidation for an unknown sort column or direction.
func (s *RegistryService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error) {
	var key func(domain.SearchHit) string
	if q.SortColumn != "" {
		var ok bool
		if key, ok = searchColumns[q.SortColumn]; !ok {
			return nil, fmt.Errorf("service.RegistryService.Search: %w: unknown sort column %q", domain.ErrValidation, q.SortColumn)
		}
	}
	switch q.Direction {
	case "", domain.SortAsc, domain.SortDesc:
	default:
		return nil, fmt.Errorf("service.RegistryService.Search: %w: unknown sort direction %q", domain.ErrValidation, q.Direction)
	}

	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RegistryService.Search: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))
	hits := []domain.SearchHit{}
	for _, f := range st.RegistryFiles {
		if !f.IsActive {
			continue
		}
		for _, rec := range f.Data {
			if needle != "" && !strings.Contains(strings.ToLower(haystack(rec)), needle) {
				continue
			}
			hits = append(hits, domain.SearchHit{
				RegistryRecord: rec,
				FileID:         f.ID,
				FileName:       f.FileName,
				FileDate:       f.FileDate,
			})
		}
	}

	if key != nil {
		desc := q.Direction == domain.SortDesc
		sort.SliceStable(hits, func(i, j int) bool {
			if desc {
				return key(hits[i]) > key(hits[j])
			}
			return key(hits[i]) < key(hits[j])
		})
	}
	if len(hits) > st.Settings.MaxSearchResults {
		hits = hits[:st.Settings.MaxSearchResults]
	}
	return hits, nil
}

// haystack joins the searchable fields of a record.
func haystack(r domain.RegistryRecord) string {
	return strings.Join([]string{r.Name, r.ID, r.Phone, r.Org, r.Truck, r.Trailer, r.Extra}, " ")
}

func fileIndex(files []domain.RegistryFile, id uuid.UUID) int {
	return slices.IndexFunc(files, func(f domain.RegistryFile) bool { return f.ID == id })
}
