package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

// Hand-written fakes: each method delegates to an optional function field, so
// a test only wires the calls it expects.

func actorCtx(actor types.Actor) context.Context {
	return utils.WithActor(context.Background(), actor)
}

type fakeRequestRepo struct {
	getRequests         func(ctx context.Context, scope repositories.RequestScope, filter types.Filter) ([]repositories.RequestListItem, uint64, error)
	findRequest         func(ctx context.Context, id uint64) (*repositories.RequestListItem, error)
	createRequest       func(ctx context.Context, req entities.MaintenanceRequest) (uint64, error)
	updateRequest       func(ctx context.Context, id uint64, req entities.MaintenanceRequest) error
	deleteRequest       func(ctx context.Context, id uint64) error
	transitionInTx      func(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, stampCompleted bool) error
	updateAssignment    func(ctx context.Context, id uint64, userID uint64, teamID *uint64) error
	getScheduledBetween func(ctx context.Context, scope repositories.RequestScope, from, to time.Time) ([]repositories.RequestListItem, error)
}

func (f *fakeRequestRepo) GetRequests(ctx context.Context, scope repositories.RequestScope, filter types.Filter) ([]repositories.RequestListItem, uint64, error) {
	return f.getRequests(ctx, scope, filter)
}

func (f *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
	return f.findRequest(ctx, id)
}

func (f *fakeRequestRepo) CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (uint64, error) {
	return f.createRequest(ctx, req)
}

func (f *fakeRequestRepo) UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) error {
	return f.updateRequest(ctx, id, req)
}

func (f *fakeRequestRepo) DeleteRequest(ctx context.Context, id uint64) error {
	return f.deleteRequest(ctx, id)
}

func (f *fakeRequestRepo) TransitionInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, stampCompleted bool) error {
	return f.transitionInTx(ctx, tx, id, newStatus, stampCompleted)
}

func (f *fakeRequestRepo) UpdateAssignment(ctx context.Context, id uint64, userID uint64, teamID *uint64) error {
	return f.updateAssignment(ctx, id, userID, teamID)
}

func (f *fakeRequestRepo) GetScheduledBetween(ctx context.Context, scope repositories.RequestScope, from, to time.Time) ([]repositories.RequestListItem, error) {
	return f.getScheduledBetween(ctx, scope, from, to)
}

type fakeEquipmentRepo struct {
	findEquipment    func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error)
	markScrappedInTx func(ctx context.Context, tx pgx.Tx, id uint64) error
}

func (f *fakeEquipmentRepo) GetEquipment(ctx context.Context, filter types.Filter) ([]repositories.EquipmentListItem, uint64, error) {
	panic("unexpected GetEquipment call")
}

func (f *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
	return f.findEquipment(ctx, id)
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error) {
	panic("unexpected CreateEquipment call")
}

func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, eq entities.Equipment) error {
	panic("unexpected UpdateEquipment call")
}

func (f *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	panic("unexpected DeleteEquipment call")
}

func (f *fakeEquipmentRepo) MarkScrappedInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	return f.markScrappedInTx(ctx, tx, id)
}

func (f *fakeEquipmentRepo) GetCategories(ctx context.Context) ([]entities.EquipmentCategory, error) {
	panic("unexpected GetCategories call")
}

func (f *fakeEquipmentRepo) CreateCategory(ctx context.Context, name string) (uint64, error) {
	panic("unexpected CreateCategory call")
}

type fakeTeamRepo struct {
	findTeam func(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error)
	isMember func(ctx context.Context, teamID, userID uint64) (bool, error)
}

func (f *fakeTeamRepo) GetTeams(ctx context.Context, filter types.Filter) ([]repositories.TeamListItem, uint64, error) {
	panic("unexpected GetTeams call")
}

func (f *fakeTeamRepo) FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error) {
	return f.findTeam(ctx, id)
}

func (f *fakeTeamRepo) CreateTeam(ctx context.Context, team entities.MaintenanceTeam) (uint64, error) {
	panic("unexpected CreateTeam call")
}

func (f *fakeTeamRepo) UpdateTeam(ctx context.Context, id uint64, team entities.MaintenanceTeam) error {
	panic("unexpected UpdateTeam call")
}

func (f *fakeTeamRepo) DeleteTeam(ctx context.Context, id uint64) error {
	panic("unexpected DeleteTeam call")
}

func (f *fakeTeamRepo) GetMembers(ctx context.Context, teamID uint64) ([]entities.User, error) {
	panic("unexpected GetMembers call")
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, teamID, userID uint64) error {
	panic("unexpected AddMember call")
}

func (f *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	panic("unexpected RemoveMember call")
}

func (f *fakeTeamRepo) IsMember(ctx context.Context, teamID, userID uint64) (bool, error) {
	return f.isMember(ctx, teamID, userID)
}

type fakeUserRepo struct {
	findUser          func(ctx context.Context, id uint64) (*entities.User, error)
	findUserByEmail   func(ctx context.Context, email string) (*entities.User, error)
	getTeamsForUser   func(ctx context.Context, userID uint64) ([]entities.MaintenanceTeam, error)
	getTeamIDsForUser func(ctx context.Context, userID uint64) ([]uint64, error)
}

func (f *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	panic("unexpected GetUsers call")
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return f.findUser(ctx, id)
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return f.findUserByEmail(ctx, email)
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	panic("unexpected CreateUser call")
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id uint64, user entities.User) error {
	panic("unexpected UpdateUser call")
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	panic("unexpected DeleteUser call")
}

func (f *fakeUserRepo) GetTeamsForUser(ctx context.Context, userID uint64) ([]entities.MaintenanceTeam, error) {
	return f.getTeamsForUser(ctx, userID)
}

func (f *fakeUserRepo) GetTeamIDsForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	return f.getTeamIDsForUser(ctx, userID)
}

// fakeTxManager runs the closure directly with a nil transaction handle.
type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeWorkOrderRepo struct {
	getWorkOrders   func(ctx context.Context, filter types.Filter) ([]repositories.WorkOrderListItem, uint64, error)
	findWorkOrder   func(ctx context.Context, id uint64) (*repositories.WorkOrderListItem, error)
	createInTx      func(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error)
	updateWorkOrder func(ctx context.Context, id uint64, wo entities.WorkOrder) error
	deleteWorkOrder func(ctx context.Context, id uint64) error
	listNumbersInTx func(ctx context.Context, tx pgx.Tx) ([]string, error)
	countInTx       func(ctx context.Context, tx pgx.Tx) (uint64, error)
}

func (f *fakeWorkOrderRepo) GetWorkOrders(ctx context.Context, filter types.Filter) ([]repositories.WorkOrderListItem, uint64, error) {
	return f.getWorkOrders(ctx, filter)
}

func (f *fakeWorkOrderRepo) FindWorkOrder(ctx context.Context, id uint64) (*repositories.WorkOrderListItem, error) {
	return f.findWorkOrder(ctx, id)
}

func (f *fakeWorkOrderRepo) CreateInTx(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error) {
	return f.createInTx(ctx, tx, wo)
}

func (f *fakeWorkOrderRepo) UpdateWorkOrder(ctx context.Context, id uint64, wo entities.WorkOrder) error {
	return f.updateWorkOrder(ctx, id, wo)
}

func (f *fakeWorkOrderRepo) DeleteWorkOrder(ctx context.Context, id uint64) error {
	return f.deleteWorkOrder(ctx, id)
}

func (f *fakeWorkOrderRepo) ListNumbersInTx(ctx context.Context, tx pgx.Tx) ([]string, error) {
	return f.listNumbersInTx(ctx, tx)
}

func (f *fakeWorkOrderRepo) CountInTx(ctx context.Context, tx pgx.Tx) (uint64, error) {
	return f.countInTx(ctx, tx)
}

type fakeSessionRepo struct {
	getSessionsForWorkOrder func(ctx context.Context, workOrderID uint64) ([]entities.MaintenanceSession, error)
	findSession             func(ctx context.Context, id uint64) (*entities.MaintenanceSession, error)
	createSession           func(ctx context.Context, s entities.MaintenanceSession) (uint64, error)
	updateSession           func(ctx context.Context, id uint64, s entities.MaintenanceSession) error
	deleteSession           func(ctx context.Context, id uint64) error
}

func (f *fakeSessionRepo) GetSessionsForWorkOrder(ctx context.Context, workOrderID uint64) ([]entities.MaintenanceSession, error) {
	return f.getSessionsForWorkOrder(ctx, workOrderID)
}

func (f *fakeSessionRepo) FindSession(ctx context.Context, id uint64) (*entities.MaintenanceSession, error) {
	return f.findSession(ctx, id)
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, s entities.MaintenanceSession) (uint64, error) {
	return f.createSession(ctx, s)
}

func (f *fakeSessionRepo) UpdateSession(ctx context.Context, id uint64, s entities.MaintenanceSession) error {
	return f.updateSession(ctx, id, s)
}

func (f *fakeSessionRepo) DeleteSession(ctx context.Context, id uint64) error {
	return f.deleteSession(ctx, id)
}

type fakeDashboardRepo struct {
	requestCounts   func(ctx context.Context, scope repositories.RequestScope) (int64, int64, int64, int64, error)
	statusBreakdown func(ctx context.Context, scope repositories.RequestScope) (map[string]int64, error)
	typeBreakdown   func(ctx context.Context, scope repositories.RequestScope) (map[string]int64, error)
	equipmentCounts func(ctx context.Context) (int64, int64, error)
	teamStats       func(ctx context.Context, scope repositories.RequestScope) ([]types.DashboardTeamStat, error)
	byDepartment    func(ctx context.Context) ([]types.DashboardDepartmentStat, error)
	recentRequests  func(ctx context.Context, scope repositories.RequestScope, limit uint64) ([]types.DashboardRecentRequest, error)
	recentCompleted func(ctx context.Context, scope repositories.RequestScope, limit uint64) ([]types.DashboardRecentRequest, error)
}

func (f *fakeDashboardRepo) GetRequestCounts(ctx context.Context, scope repositories.RequestScope) (int64, int64, int64, int64, error) {
	return f.requestCounts(ctx, scope)
}

func (f *fakeDashboardRepo) GetStatusBreakdown(ctx context.Context, scope repositories.RequestScope) (map[string]int64, error) {
	return f.statusBreakdown(ctx, scope)
}

func (f *fakeDashboardRepo) GetTypeBreakdown(ctx context.Context, scope repositories.RequestScope) (map[string]int64, error) {
	return f.typeBreakdown(ctx, scope)
}

func (f *fakeDashboardRepo) GetEquipmentCounts(ctx context.Context) (int64, int64, error) {
	return f.equipmentCounts(ctx)
}

func (f *fakeDashboardRepo) GetTeamStats(ctx context.Context, scope repositories.RequestScope) ([]types.DashboardTeamStat, error) {
	return f.teamStats(ctx, scope)
}

func (f *fakeDashboardRepo) GetEquipmentByDepartment(ctx context.Context) ([]types.DashboardDepartmentStat, error) {
	return f.byDepartment(ctx)
}

func (f *fakeDashboardRepo) GetRecentRequests(ctx context.Context, scope repositories.RequestScope, limit uint64) ([]types.DashboardRecentRequest, error) {
	return f.recentRequests(ctx, scope, limit)
}

func (f *fakeDashboardRepo) GetRecentCompleted(ctx context.Context, scope repositories.RequestScope, limit uint64) ([]types.DashboardRecentRequest, error) {
	return f.recentCompleted(ctx, scope, limit)
}

// fakeCache is an in-memory CacheRepositoryInterface.
type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.entries[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		f.entries[key] = v
	case []byte:
		f.entries[key] = string(v)
	}
	f.sets++
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.entries, k)
	}
	return nil
}
