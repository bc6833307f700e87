package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/notify"
	"github.com/marvinpacsands/Project-List-Designers/internal/priority"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
	"github.com/marvinpacsands/Project-List-Designers/pkg/metrics"
)

// ── project errors ──

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrNotAssigned     = errors.New("user is not assigned to this project")
)

// archiveKeywords exclude a project from the PM view's unassigned count when
// found in its status or PM priority.
var archiveKeywords = []string{"completed", "cancelled", "on hold", "abandoned"}

// ProjectService role-scoped project views and single-project updates
type ProjectService interface {
	List(ctx context.Context, req *dto.ProjectListRequest) (*dto.ProjectListResponse, error)
	Update(ctx context.Context, req *dto.UpdateRequest) (*dto.UpdateResponse, error)
	// SaveCustomOrder stores a PM view's manual card order for the user
	SaveCustomOrder(ctx context.Context, req *dto.CustomOrderRequest) error
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewProjectService creates a ProjectService
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger, now: time.Now}
}

func scopeForMode(mode string) (notify.Scope, bool) {
	switch mode {
	case dto.ModePM:
		return notify.ScopePM, true
	case dto.ModeMine:
		return notify.ScopeDesigner, true
	case dto.ModeOps:
		return notify.ScopeOps, true
	}
	return notify.Scope{}, false
}

// ────────────────────── List ──────────────────────

func (s *projectService) List(ctx context.Context, req *dto.ProjectListRequest) (*dto.ProjectListResponse, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if _, ok := scopeForMode(mode); !ok {
		return nil, ErrInvalidMode
	}

	if err := s.ensureRowIndexes(ctx); err != nil {
		return nil, err
	}

	var resp *dto.ProjectListResponse
	err := s.repo.Board.View(ctx, func(doc *model.Document) error {
		user := doc.FindUser(req.Email)
		if user == nil {
			return ErrUserNotFound
		}
		switch mode {
		case dto.ModePM:
			resp = buildPMView(doc, user, req.PMName)
		case dto.ModeMine:
			resp = buildDesignerView(doc, user)
		case dto.ModeOps:
			resp = buildOpsView(doc)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("list projects failed", zap.String("mode", mode), zap.Error(err))
		}
		return nil, err
	}
	return resp, nil
}

// ensureRowIndexes assigns a rowIndex to any project imported without one.
func (s *projectService) ensureRowIndexes(ctx context.Context) error {
	missing := false
	err := s.repo.Board.View(ctx, func(doc *model.Document) error {
		for i := range doc.Projects {
			if doc.Projects[i].RowIndex <= 0 {
				missing = true
				break
			}
		}
		return nil
	})
	if err != nil || !missing {
		return err
	}

	var assigned int
	err = s.repo.Board.Update(ctx, func(doc *model.Document) error {
		assigned = doc.AssignRowIndexes()
		if assigned == 0 {
			return errNoChange
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		s.logger.Error("assign row indexes failed", zap.Error(err))
		return err
	}
	if assigned > 0 {
		s.logger.Info("assigned missing row indexes", zap.Int("count", assigned))
	}
	return nil
}

func buildPMView(doc *model.Document, user *model.User, pmName string) *dto.ProjectListResponse {
	if pmName == "" {
		pmName = user.Name
	}
	filter := strings.ToLower(pmName)

	resp := &dto.ProjectListResponse{
		Projects:        make([]dto.ProjectView, 0),
		People:          toPeople(doc.Users),
		DesignerCounts:  make(map[string]int),
		CustomSortOrder: []int64{},
	}

	pmSet := make(map[string]bool)
	statusSet := make(map[string]bool)
	unassigned := 0

	for i := range doc.Projects {
		p := &doc.Projects[i]

		var match bool
		switch pmName {
		case dto.PMFilterAll:
			match = true
		case dto.PMFilterUnassigned:
			match = !model.IsAssigned(p.PM)
		default:
			match = strings.Contains(strings.ToLower(p.PM), filter)
		}
		if match {
			v := toProjectView(p)
			v.InternalID = p.InternalID.String()
			v.LastModified = p.LastModified
			resp.Projects = append(resp.Projects, v)
		}

		if p.PM != "" {
			pmSet[p.PM] = true
		}
		if p.Status != "" {
			statusSet[p.Status] = true
		}
		if !model.IsAssigned(p.PM) && !isArchived(p) {
			unassigned++
		}
		if !priority.IsInactive(p.Status) {
			for _, name := range p.AssignedDesigners() {
				resp.DesignerCounts[name]++
			}
		}
	}

	resp.PMList = append([]string{dto.PMFilterAll}, sortedKeys(pmSet)...)
	resp.StatusList = sortedKeys(statusSet)
	resp.TotalUnassigned = &unassigned
	if order, ok := user.CustomSortOrder[pmName]; ok {
		resp.CustomSortOrder = append(resp.CustomSortOrder, order...)
	}
	return resp
}

func buildDesignerView(doc *model.Document, user *model.User) *dto.ProjectListResponse {
	resp := &dto.ProjectListResponse{
		Projects: make([]dto.ProjectView, 0),
		People:   toPeople(doc.Users),
	}
	for i := range doc.Projects {
		p := &doc.Projects[i]
		slot := designerSlot(p, user)
		if slot == 0 {
			continue
		}
		s := p.Slot(slot)
		v := toProjectView(p)
		v.My = &dto.MySlot{Slot: slot, Priority: s.Priority, Notes: s.Notes}
		resp.Projects = append(resp.Projects, v)
	}
	return resp
}

func buildOpsView(doc *model.Document) *dto.ProjectListResponse {
	resp := &dto.ProjectListResponse{
		Projects: make([]dto.ProjectView, 0, len(doc.Projects)),
		People:   toPeople(doc.Users),
	}
	for i := range doc.Projects {
		p := &doc.Projects[i]
		v := toProjectView(p)
		v.Operational = &dto.OperationalFields{User: p.Operational, Notes: p.OperationalNotes}
		resp.Projects = append(resp.Projects, v)
	}
	return resp
}

// designerSlot finds the first slot held by the user, matched by name, email,
// or a designer value containing the user's name. 0 when none.
func designerSlot(p *model.Project, user *model.User) int {
	name, email := model.Normalize(user.Name), model.Normalize(user.Email)
	for _, s := range p.Slots() {
		v := model.Normalize(s.Designer)
		if v == "" {
			continue
		}
		if v == name || v == email || (name != "" && strings.Contains(v, name)) {
			return s.Number
		}
	}
	return 0
}

func isArchived(p *model.Project) bool {
	status := strings.ToLower(p.Status)
	pmPriority := strings.ToLower(p.PMPriority.String())
	for _, k := range archiveKeywords {
		if strings.Contains(status, k) || strings.Contains(pmPriority, k) {
			return true
		}
	}
	return false
}

func toProjectView(p *model.Project) dto.ProjectView {
	team := make([]dto.TeamMember, 0, model.SlotCount)
	for _, s := range p.Slots() {
		team = append(team, dto.TeamMember{Slot: s.Number, Name: s.Designer, Priority: s.Priority, Notes: s.Notes})
	}
	return dto.ProjectView{
		RowIndex:      int64(p.RowIndex),
		ProjectNumber: p.ProjectNumber.String(),
		ProjectName:   p.ProjectName,
		Status:        p.Status,
		PMName:        p.PM,
		PM:            dto.PMFields{Priority: p.PMPriority.String(), Notes: p.PMNotes},
		Team:          team,
	}
}

func toPeople(users []model.User) []dto.Person {
	people := make([]dto.Person, 0, len(users))
	for _, u := range users {
		people = append(people, dto.Person{Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return people
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, req *dto.UpdateRequest) (*dto.UpdateResponse, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	scope, ok := scopeForMode(mode)
	if !ok {
		return nil, ErrInvalidMode
	}

	payload := &req.Payload
	rowIndex := strings.TrimSpace(payload.RowIndex.String())
	now := s.now()
	var added []model.Notification

	err := s.repo.Board.Update(ctx, func(doc *model.Document) error {
		project := doc.FindProject(rowIndex)
		if project == nil {
			return ErrProjectNotFound
		}
		old := project.Clone()

		actorEmail := strings.TrimSpace(payload.RealActorEmail)
		if actorEmail == "" {
			actorEmail = strings.TrimSpace(req.Email)
		}
		actorName := actorEmail
		if actor := doc.FindUser(actorEmail); actor != nil && actor.Name != "" {
			actorName = actor.Name
		}

		switch mode {
		case dto.ModePM:
			applyPMUpdate(project, payload)
		case dto.ModeMine:
			user := doc.FindUser(req.Email)
			if user == nil {
				return ErrUserNotFound
			}
			slot := designerSlot(project, user)
			if slot == 0 {
				return ErrNotAssigned
			}
			if payload.Priority != nil {
				project.SetPriority(slot, payload.Priority.String())
			}
			if payload.Notes != nil {
				project.SetNotes(slot, *payload.Notes)
			}
		case dto.ModeOps:
			applyOpsUpdate(project, payload)
		}

		project.LastModified = &model.LastModified{
			DateMs:      now.UnixMilli(),
			By:          actorName,
			Email:       actorEmail,
			DateDisplay: now.Format("1/2/2006"),
		}

		if payload.SkipNotifications {
			return nil
		}
		events := notify.Filter(notify.Diff(old, *project, actorName, scope), actorName)
		var err error
		added, err = commitNotifications(doc, events, now)
		return err
	})
	if err != nil {
		metrics.ProjectUpdatesTotal.WithLabelValues(mode, "error").Inc()
		switch {
		case errors.Is(err, ErrProjectNotFound):
			s.logger.Warn("update for unknown project", zap.String("row_index", rowIndex))
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNotAssigned):
		default:
			s.logger.Error("update project failed", zap.String("row_index", rowIndex), zap.String("mode", mode), zap.Error(err))
		}
		return nil, err
	}

	metrics.ProjectUpdatesTotal.WithLabelValues(mode, "ok").Inc()
	recordNotifications(scope, added)
	if len(added) > 0 {
		s.logger.Info("notifications generated",
			zap.String("row_index", rowIndex),
			zap.String("mode", mode),
			zap.Int("count", len(added)),
		)
	}

	return &dto.UpdateResponse{
		OK:                 true,
		SavedAtDisplay:     now.Format("3:04:05 PM"),
		NotificationsAdded: len(added),
	}, nil
}

// applyPMUpdate applies the PM view's fields. Changing a slot's designer
// resets that slot's priority to "-" and clears its notes; explicit priority
// overrides in the same payload win over the reset.
func applyPMUpdate(p *model.Project, payload *dto.UpdatePayload) {
	if payload.PMPriority != nil {
		p.PMPriority = *payload.PMPriority
	}
	if payload.PMNotes != nil {
		p.PMNotes = *payload.PMNotes
	}
	if payload.PMName != nil {
		p.PM = *payload.PMName
	}
	for n := 1; n <= model.SlotCount; n++ {
		designer := payload.Designer(n)
		if designer == nil {
			continue
		}
		if p.Slot(n).Designer != *designer {
			p.SetPriority(n, "-")
			p.SetNotes(n, "")
		}
		p.SetDesigner(n, *designer)
	}
	for n := 1; n <= model.SlotCount; n++ {
		if prio := payload.DesignerPriority(n); prio != nil {
			p.SetPriority(n, prio.String())
		}
	}
}

func applyOpsUpdate(p *model.Project, payload *dto.UpdatePayload) {
	if payload.PMName != nil {
		p.PM = *payload.PMName
	}
	if payload.OperationalNotes != nil {
		p.OperationalNotes = *payload.OperationalNotes
	}
	for n := 1; n <= model.SlotCount; n++ {
		if designer := payload.Designer(n); designer != nil {
			p.SetDesigner(n, *designer)
		}
	}
}

// ────────────────────── SaveCustomOrder ──────────────────────

func (s *projectService) SaveCustomOrder(ctx context.Context, req *dto.CustomOrderRequest) error {
	order := make([]int64, 0, len(req.OrderedRowIndexes))
	for _, idx := range req.OrderedRowIndexes {
		order = append(order, int64(idx))
	}

	err := s.repo.Board.Update(ctx, func(doc *model.Document) error {
		user := doc.FindUser(req.Email)
		if user == nil {
			return ErrUserNotFound
		}
		if user.CustomSortOrder == nil {
			user.CustomSortOrder = make(map[string][]int64)
		}
		user.CustomSortOrder[req.PMName] = order
		return nil
	})
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		s.logger.Error("save custom order failed", zap.Error(err))
	}
	return err
}
