package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
)

// ── export errors ──

var (
	ErrExportNoProjects   = errors.New("board has no projects")
	ErrExportGenerateFail = errors.New("failed to generate the Excel file")
)

// ExportService spreadsheet export of the board
//
// The workbook is returned as a buffer; the handler sets the download headers.
type ExportService interface {
	// ExportProjects writes every project as one row, ordered by rowIndex
	ExportProjects(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const projectSheet = "Projects"

var projectColumns = []struct {
	title string
	width float64
	value func(p *model.Project) interface{}
}{
	{"Row", 8, func(p *model.Project) interface{} { return int64(p.RowIndex) }},
	{"Project #", 12, func(p *model.Project) interface{} { return p.ProjectNumber.String() }},
	{"Project Name", 36, func(p *model.Project) interface{} { return p.ProjectName }},
	{"Status", 28, func(p *model.Project) interface{} { return p.Status }},
	{"PM", 16, func(p *model.Project) interface{} { return p.PM }},
	{"PM Priority", 12, func(p *model.Project) interface{} { return p.PMPriority.String() }},
	{"PM Notes", 40, func(p *model.Project) interface{} { return p.PMNotes }},
	{"Designer 1", 16, func(p *model.Project) interface{} { return p.Designer1 }},
	{"Priority 1", 10, func(p *model.Project) interface{} { return p.Priority1.String() }},
	{"Notes 1", 30, func(p *model.Project) interface{} { return p.Notes1 }},
	{"Designer 2", 16, func(p *model.Project) interface{} { return p.Designer2 }},
	{"Priority 2", 10, func(p *model.Project) interface{} { return p.Priority2.String() }},
	{"Notes 2", 30, func(p *model.Project) interface{} { return p.Notes2 }},
	{"Designer 3", 16, func(p *model.Project) interface{} { return p.Designer3 }},
	{"Priority 3", 10, func(p *model.Project) interface{} { return p.Priority3.String() }},
	{"Notes 3", 30, func(p *model.Project) interface{} { return p.Notes3 }},
	{"Operational", 16, func(p *model.Project) interface{} { return p.Operational }},
	{"Operational Notes", 30, func(p *model.Project) interface{} { return p.OperationalNotes }},
	{"Last Modified By", 18, func(p *model.Project) interface{} { return p.Editor() }},
	{"Last Modified", 14, func(p *model.Project) interface{} {
		if p.LastModified == nil || p.LastModified.DateMs == 0 {
			return ""
		}
		return time.UnixMilli(p.LastModified.DateMs).Format("2006-01-02")
	}},
}

// ════════════════════════════════════════════════════════════
// ExportProjects
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportProjects(ctx context.Context) (*bytes.Buffer, string, error) {
	var projects []model.Project
	err := s.repo.Board.View(ctx, func(doc *model.Document) error {
		projects = make([]model.Project, 0, len(doc.Projects))
		for i := range doc.Projects {
			projects = append(projects, doc.Projects[i].Clone())
		}
		return nil
	})
	if err != nil {
		s.logger.Error("load projects for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(projects) == 0 {
		return nil, "", ErrExportNoProjects
	}
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].RowIndex < projects[j].RowIndex })

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(projectSheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	header := make([]interface{}, 0, len(projectColumns))
	for i, c := range projectColumns {
		header = append(header, c.title)
		col := colName(i)
		f.SetColWidth(projectSheet, col, col, c.width)
	}
	if err := f.SetSheetRow(projectSheet, "A1", &header); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetCellStyle(projectSheet, "A1", cell(colName(len(projectColumns)-1), 1), headerStyle)
	f.SetPanes(projectSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for r := range projects {
		row := make([]interface{}, 0, len(projectColumns))
		for _, c := range projectColumns {
			row = append(row, c.value(&projects[r]))
		}
		if err := f.SetSheetRow(projectSheet, cell("A", r+2), &row); err != nil {
			s.logger.Error("write export row failed", zap.Int("row", r+2), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("projects_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
