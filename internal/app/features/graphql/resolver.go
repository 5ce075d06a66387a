// internal/app/features/graphql/resolver.go
package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/cursor"
	"github.com/habitstack/habitstack/internal/app/system/paging"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// Resolver is the root resolver. All business rules live in the service
// layer; methods here only translate arguments and results.
type Resolver struct {
	svc *service.Services
}

func NewResolver(svc *service.Services) *Resolver {
	return &Resolver{svc: svc}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func limitArg(n *int32) int {
	if n == nil {
		return 0
	}
	return int(*n)
}

// notFoundAsNil converts NotFound into a null result for nullable lookup
// fields; every other error propagates.
func notFoundAsNil(err error) error {
	if apperr.KindOf(err) == apperr.KindNotFound {
		return nil
	}
	return err
}

/* ------------------------------- queries -------------------------------- */

func (r *Resolver) Habits(ctx context.Context, args struct {
	Filter *habitFilterInput
	First  *int32
	After  *string
}) (*habitConnectionResolver, error) {
	var filter service.HabitFilter
	if args.Filter != nil {
		filter.Category = deref(args.Filter.Category)
		if args.Filter.Tags != nil {
			filter.Tags = *args.Filter.Tags
		}
	}
	conn, err := r.svc.Habits.Connection(ctx, filter, limitArg(args.First), deref(args.After))
	if err != nil {
		return nil, err
	}
	return &habitConnectionResolver{conn: conn}, nil
}

func (r *Resolver) Habit(ctx context.Context, args struct{ ID graphqlgo.ID }) (*habitResolver, error) {
	h, err := r.svc.Habits.Get(ctx, string(args.ID))
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &habitResolver{h: *h}, nil
}

func (r *Resolver) SearchHabits(ctx context.Context, args struct {
	Query string
	Limit *int32
}) ([]*habitResolver, error) {
	matches, err := r.svc.Habits.Search(ctx, args.Query, limitArg(args.Limit))
	if err != nil {
		return nil, err
	}
	return habitResolvers(matches), nil
}

func (r *Resolver) Bundles(ctx context.Context, args struct {
	First *int32
	After *string
}) (*bundleConnectionResolver, error) {
	conn, err := r.svc.Bundles.Connection(ctx, limitArg(args.First), deref(args.After))
	if err != nil {
		return nil, err
	}
	return &bundleConnectionResolver{conn: conn, svc: r.svc}, nil
}

func (r *Resolver) Bundle(ctx context.Context, args struct{ ID graphqlgo.ID }) (*bundleResolver, error) {
	b, err := r.svc.Bundles.Get(ctx, string(args.ID))
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &bundleResolver{b: *b, svc: r.svc}, nil
}

func (r *Resolver) BundleHabits(ctx context.Context, args struct{ BundleID graphqlgo.ID }) ([]*habitResolver, error) {
	habits, err := r.svc.Bundles.Habits(ctx, string(args.BundleID))
	if err != nil {
		return nil, err
	}
	return habitResolvers(habits), nil
}

func (r *Resolver) User(ctx context.Context, args struct{ UserID graphqlgo.ID }) (*userResolver, error) {
	ident, _ := authn.FromContext(ctx)
	u, err := r.svc.Users.Get(ctx, ident, string(args.UserID))
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	ident, ok := authn.FromContext(ctx)
	if !ok {
		return nil, apperr.Unauthenticated("authentication required")
	}
	u, err := r.svc.Users.Get(ctx, ident, ident.ID)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) Completions(ctx context.Context, args struct {
	UserID    graphqlgo.ID
	HabitID   *graphqlgo.ID
	StartDate *DateTime
	EndDate   *DateTime
	First     *int32
	After     *string
}) (*completionConnectionResolver, error) {
	var filter service.CompletionFilter
	if args.HabitID != nil {
		filter.HabitID = string(*args.HabitID)
	}
	if args.StartDate != nil {
		filter.Start = &args.StartDate.Time
	}
	if args.EndDate != nil {
		filter.End = &args.EndDate.Time
	}
	ident, _ := authn.FromContext(ctx)
	conn, err := r.svc.Completions.Connection(ctx, ident, string(args.UserID), filter,
		limitArg(args.First), deref(args.After))
	if err != nil {
		return nil, err
	}
	return &completionConnectionResolver{conn: conn, svc: r.svc}, nil
}

func (r *Resolver) CompletionStats(ctx context.Context, args struct{ UserID graphqlgo.ID }) (*completionStatsResolver, error) {
	ident, _ := authn.FromContext(ctx)
	summary, err := r.svc.Stats.Summarize(ctx, ident, string(args.UserID))
	if err != nil {
		return nil, err
	}
	return &completionStatsResolver{s: summary, svc: r.svc}, nil
}

/* ------------------------------ mutations ------------------------------- */

type createUserInput struct {
	DisplayName string
	Email       string
	Locale      *string
}

func (r *Resolver) CreateUser(ctx context.Context, args struct{ Input createUserInput }) (*userResolver, error) {
	ident, _ := authn.FromContext(ctx)
	u, err := r.svc.Users.Create(ctx, ident, service.CreateUserInput{
		DisplayName: args.Input.DisplayName,
		Email:       args.Input.Email,
		Locale:      deref(args.Input.Locale),
	})
	if err != nil {
		return nil, err
	}
	return &userResolver{u: u}, nil
}

type updateUserInput struct {
	DisplayName *string
	Locale      *string
}

func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	UserID graphqlgo.ID
	Input  updateUserInput
}) (*userResolver, error) {
	ident, _ := authn.FromContext(ctx)
	u, err := r.svc.Users.Update(ctx, ident, string(args.UserID), service.UpdateUserInput{
		DisplayName: args.Input.DisplayName,
		Locale:      args.Input.Locale,
	})
	if err != nil {
		return nil, err
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ UserID graphqlgo.ID }) (bool, error) {
	ident, _ := authn.FromContext(ctx)
	if err := r.svc.Users.Delete(ctx, ident, string(args.UserID)); err != nil {
		return false, err
	}
	return true, nil
}

type createCompletionInput struct {
	HabitID graphqlgo.ID
	Source  *string
	Note    *string
}

func (r *Resolver) CreateCompletion(ctx context.Context, args struct{ Input createCompletionInput }) (*completionResolver, error) {
	ident, _ := authn.FromContext(ctx)
	entry, err := r.svc.Completions.Create(ctx, ident, service.CreateCompletionInput{
		HabitID: string(args.Input.HabitID),
		Source:  deref(args.Input.Source),
		Note:    deref(args.Input.Note),
	})
	if err != nil {
		return nil, err
	}
	return &completionResolver{e: entry, svc: r.svc}, nil
}

func (r *Resolver) DeleteCompletion(ctx context.Context, args struct {
	UserID       graphqlgo.ID
	CompletionID graphqlgo.ID
}) (bool, error) {
	ident, _ := authn.FromContext(ctx)
	if err := r.svc.Completions.Delete(ctx, ident, string(args.UserID), string(args.CompletionID)); err != nil {
		return false, err
	}
	return true, nil
}

/* ---------------------------- subscriptions ----------------------------- */

// CompletionAdded is declared in the schema but not served.
func (r *Resolver) CompletionAdded(ctx context.Context, args struct{ UserID graphqlgo.ID }) (<-chan *completionResolver, error) {
	return nil, apperr.InvalidInput("subscriptions are not supported")
}

/* ---------------------------- type resolvers ---------------------------- */

type habitFilterInput struct {
	Category *string
	Tags     *[]string
}

type habitResolver struct {
	h models.Habit
}

func habitResolvers(habits []models.Habit) []*habitResolver {
	out := make([]*habitResolver, 0, len(habits))
	for _, h := range habits {
		out = append(out, &habitResolver{h: h})
	}
	return out
}

func (r *habitResolver) ID() graphqlgo.ID      { return graphqlgo.ID(r.h.ID) }
func (r *habitResolver) Title() string         { return r.h.Title }
func (r *habitResolver) ScriptureText() string { return r.h.ScriptureText }
func (r *habitResolver) Translation() string   { return r.h.Translation }
func (r *habitResolver) Benefits() string      { return r.h.Benefits }
func (r *habitResolver) Category() string      { return r.h.Category }
func (r *habitResolver) Priority() int32       { return int32(r.h.Priority) }
func (r *habitResolver) CreatedAt() DateTime   { return DateTime{r.h.CreatedAt} }

func (r *habitResolver) Tags() []string {
	if r.h.Tags == nil {
		return []string{}
	}
	return r.h.Tags
}

func (r *habitResolver) ContextTags() []string {
	if r.h.ContextTags == nil {
		return []string{}
	}
	return r.h.ContextTags
}

func (r *habitResolver) LifeEvent() *string {
	if r.h.LifeEvent == "" {
		return nil
	}
	return &r.h.LifeEvent
}

func (r *habitResolver) TimeWindow() *timeWindowResolver {
	if r.h.TimeWindow == nil {
		return nil
	}
	return &timeWindowResolver{w: *r.h.TimeWindow}
}

type timeWindowResolver struct {
	w models.TimeWindow
}

func (r *timeWindowResolver) StartHour() int32 { return int32(r.w.StartHour) }
func (r *timeWindowResolver) EndHour() int32   { return int32(r.w.EndHour) }

func (r *timeWindowResolver) Description() *string {
	if r.w.Description == "" {
		return nil
	}
	return &r.w.Description
}

type pageInfoResolver struct {
	info paging.Info
}

func (r *pageInfoResolver) HasNextPage() bool     { return r.info.HasNextPage }
func (r *pageInfoResolver) HasPreviousPage() bool { return r.info.HasPreviousPage }

func (r *pageInfoResolver) StartCursor() *string {
	if r.info.StartCursor == "" {
		return nil
	}
	return &r.info.StartCursor
}

func (r *pageInfoResolver) EndCursor() *string {
	if r.info.EndCursor == "" {
		return nil
	}
	return &r.info.EndCursor
}

type habitEdgeResolver struct {
	h models.Habit
}

func (r *habitEdgeResolver) Node() *habitResolver { return &habitResolver{h: r.h} }
func (r *habitEdgeResolver) Cursor() string       { return cursor.Encode(r.h.ID) }

type habitConnectionResolver struct {
	conn service.Connection[models.Habit]
}

func (r *habitConnectionResolver) Edges() []*habitEdgeResolver {
	out := make([]*habitEdgeResolver, 0, len(r.conn.Items))
	for _, h := range r.conn.Items {
		out = append(out, &habitEdgeResolver{h: h})
	}
	return out
}

func (r *habitConnectionResolver) PageInfo() *pageInfoResolver {
	return &pageInfoResolver{info: r.conn.PageInfo}
}

func (r *habitConnectionResolver) TotalCount() int32 { return int32(r.conn.TotalCount) }

type bundleResolver struct {
	b   models.Bundle
	svc *service.Services
}

func (r *bundleResolver) ID() graphqlgo.ID    { return graphqlgo.ID(r.b.ID) }
func (r *bundleResolver) Name() string        { return r.b.Name }
func (r *bundleResolver) Description() string { return r.b.Description }
func (r *bundleResolver) DisplayOrder() int32 { return int32(r.b.DisplayOrder) }
func (r *bundleResolver) CreatedAt() DateTime { return DateTime{r.b.CreatedAt} }

func (r *bundleResolver) HabitIDs() []graphqlgo.ID {
	out := make([]graphqlgo.ID, 0, len(r.b.HabitIDs))
	for _, id := range r.b.HabitIDs {
		out = append(out, graphqlgo.ID(id))
	}
	return out
}

func (r *bundleResolver) ThumbnailURL() *string {
	if r.b.ThumbnailURL == "" {
		return nil
	}
	return &r.b.ThumbnailURL
}

// Habits resolves the bundle's habit list lazily, in the bundle's declared
// order, dropping dangling references.
func (r *bundleResolver) Habits(ctx context.Context) ([]*habitResolver, error) {
	habits, err := r.svc.Bundles.Habits(ctx, r.b.ID)
	if err != nil {
		return nil, err
	}
	return habitResolvers(habits), nil
}

type bundleEdgeResolver struct {
	b   models.Bundle
	svc *service.Services
}

func (r *bundleEdgeResolver) Node() *bundleResolver { return &bundleResolver{b: r.b, svc: r.svc} }
func (r *bundleEdgeResolver) Cursor() string        { return cursor.Encode(r.b.ID) }

type bundleConnectionResolver struct {
	conn service.Connection[models.Bundle]
	svc  *service.Services
}

func (r *bundleConnectionResolver) Edges() []*bundleEdgeResolver {
	out := make([]*bundleEdgeResolver, 0, len(r.conn.Items))
	for _, b := range r.conn.Items {
		out = append(out, &bundleEdgeResolver{b: b, svc: r.svc})
	}
	return out
}

func (r *bundleConnectionResolver) PageInfo() *pageInfoResolver {
	return &pageInfoResolver{info: r.conn.PageInfo}
}

func (r *bundleConnectionResolver) TotalCount() int32 { return int32(r.conn.TotalCount) }

type userResolver struct {
	u models.User
}

func (r *userResolver) UID() graphqlgo.ID   { return graphqlgo.ID(r.u.ID) }
func (r *userResolver) DisplayName() string { return r.u.DisplayName }
func (r *userResolver) Email() string       { return r.u.Email }
func (r *userResolver) Role() string        { return r.u.Role }
func (r *userResolver) CreatedAt() DateTime { return DateTime{r.u.CreatedAt} }

func (r *userResolver) Locale() *string {
	if r.u.Locale == "" {
		return nil
	}
	return &r.u.Locale
}

type completionResolver struct {
	e   models.CompletionLog
	svc *service.Services
}

func (r *completionResolver) ID() graphqlgo.ID      { return graphqlgo.ID(r.e.ID) }
func (r *completionResolver) HabitID() graphqlgo.ID { return graphqlgo.ID(r.e.HabitID) }
func (r *completionResolver) CompletedAt() DateTime { return DateTime{r.e.CompletedAt} }
func (r *completionResolver) Source() string        { return r.e.Source }

func (r *completionResolver) Note() *string {
	if r.e.Note == "" {
		return nil
	}
	return &r.e.Note
}

// Habit resolves the referenced habit, or null when the reference dangles.
func (r *completionResolver) Habit(ctx context.Context) (*habitResolver, error) {
	h, err := r.svc.Habits.Get(ctx, r.e.HabitID)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &habitResolver{h: *h}, nil
}

type completionEdgeResolver struct {
	e   models.CompletionLog
	svc *service.Services
}

func (r *completionEdgeResolver) Node() *completionResolver {
	return &completionResolver{e: r.e, svc: r.svc}
}

func (r *completionEdgeResolver) Cursor() string { return cursor.Encode(r.e.ID) }

type completionConnectionResolver struct {
	conn service.Connection[models.CompletionLog]
	svc  *service.Services
}

func (r *completionConnectionResolver) Edges() []*completionEdgeResolver {
	out := make([]*completionEdgeResolver, 0, len(r.conn.Items))
	for _, e := range r.conn.Items {
		out = append(out, &completionEdgeResolver{e: e, svc: r.svc})
	}
	return out
}

func (r *completionConnectionResolver) PageInfo() *pageInfoResolver {
	return &pageInfoResolver{info: r.conn.PageInfo}
}

func (r *completionConnectionResolver) TotalCount() int32 { return int32(r.conn.TotalCount) }

type categoryStatResolver struct {
	s service.CategoryShare
}

func (r *categoryStatResolver) Category() string    { return r.s.Category }
func (r *categoryStatResolver) Count() int32        { return int32(r.s.Count) }
func (r *categoryStatResolver) Percentage() float64 { return r.s.Percentage }

type completionStatsResolver struct {
	s   service.Summary
	svc *service.Services
}

func (r *completionStatsResolver) TotalCompletions() int32    { return int32(r.s.TotalCompletions) }
func (r *completionStatsResolver) CompletionsThisWeek() int32 { return int32(r.s.CompletionsThisWeek) }
func (r *completionStatsResolver) CompletionsThisMonth() int32 {
	return int32(r.s.CompletionsThisMonth)
}
func (r *completionStatsResolver) CurrentStreak() int32 { return int32(r.s.CurrentStreak) }
func (r *completionStatsResolver) LongestStreak() int32 { return int32(r.s.LongestStreak) }

func (r *completionStatsResolver) CompletionsByCategory() []*categoryStatResolver {
	out := make([]*categoryStatResolver, 0, len(r.s.CompletionsByCategory))
	for _, share := range r.s.CompletionsByCategory {
		out = append(out, &categoryStatResolver{s: share})
	}
	return out
}

func (r *completionStatsResolver) RecentCompletions() []*completionResolver {
	out := make([]*completionResolver, 0, len(r.s.RecentCompletions))
	for _, e := range r.s.RecentCompletions {
		out = append(out, &completionResolver{e: e, svc: r.svc})
	}
	return out
}
