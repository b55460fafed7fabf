package office

import (
	"context"
	"sort"
	"testing"

	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationRepo struct {
	rows   map[int64]office.Location
	nextID int64
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{rows: make(map[int64]office.Location)}
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc office.Location) (office.Location, error) {
	f.nextID++
	loc.ID = f.nextID
	f.rows[loc.ID] = loc
	return loc, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id int64) (office.Location, error) {
	loc, ok := f.rows[id]
	if !ok {
		return office.Location{}, office.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) GetDefault(ctx context.Context) (office.Location, error) {
	all, _ := f.List(ctx)
	if len(all) == 0 {
		return office.Location{}, office.ErrLocationNotFound
	}
	return all[0], nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]office.Location, error) {
	out := make([]office.Location, 0, len(f.rows))
	for _, l := range f.rows {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, req office.UpdateLocationRequest) (office.Location, error) {
	loc, ok := f.rows[req.ID]
	if !ok {
		return office.Location{}, office.ErrLocationNotFound
	}
	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}
	f.rows[loc.ID] = loc
	return loc, nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return office.ErrLocationNotFound
	}
	delete(f.rows, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreate_DefaultRadius(t *testing.T) {
	svc := NewOfficeService(newFakeLocationRepo())

	resp, err := svc.Create(context.Background(), office.CreateLocationRequest{
		Name:      "Head Office",
		Latitude:  ptr(31.740414),
		Longitude: ptr(73.831978),
	})
	require.NoError(t, err)
	assert.Equal(t, office.DefaultRadiusMeters, resp.RadiusMeters)

	resp, err = svc.Create(context.Background(), office.CreateLocationRequest{
		Name:         "Branch",
		Latitude:     ptr(31.5),
		Longitude:    ptr(74.3),
		RadiusMeters: ptr(250),
	})
	require.NoError(t, err)
	assert.Equal(t, 250, resp.RadiusMeters)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewOfficeService(newFakeLocationRepo())

	tests := []struct {
		name  string
		req   office.CreateLocationRequest
		field string
	}{
		{"missing name", office.CreateLocationRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)}, "name"},
		{"missing latitude", office.CreateLocationRequest{Name: "x", Longitude: ptr(1.0)}, "latitude"},
		{"latitude out of range", office.CreateLocationRequest{Name: "x", Latitude: ptr(91.0), Longitude: ptr(1.0)}, "latitude"},
		{"longitude out of range", office.CreateLocationRequest{Name: "x", Latitude: ptr(1.0), Longitude: ptr(-181.0)}, "longitude"},
		{"zero radius", office.CreateLocationRequest{Name: "x", Latitude: ptr(1.0), Longitude: ptr(1.0), RadiusMeters: ptr(0)}, "radius_meters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestResolve(t *testing.T) {
	repo := newFakeLocationRepo()
	svc := NewOfficeService(repo)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, nil)
	assert.ErrorIs(t, err, office.ErrNoOfficeConfigured)

	first, _ := repo.Create(ctx, office.Location{Name: "first", RadiusMeters: 100})
	second, _ := repo.Create(ctx, office.Location{Name: "second", RadiusMeters: 50})

	got, err := svc.Resolve(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = svc.Resolve(ctx, &second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)

	_, err = svc.Resolve(ctx, ptr(int64(42)))
	assert.ErrorIs(t, err, office.ErrLocationNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := NewOfficeService(newFakeLocationRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, office.CreateLocationRequest{Name: "HQ", Latitude: ptr(1.0), Longitude: ptr(2.0)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, office.UpdateLocationRequest{ID: created.ID, RadiusMeters: ptr(300)})
	require.NoError(t, err)
	assert.Equal(t, 300, updated.RadiusMeters)
	assert.Equal(t, "HQ", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, office.ErrLocationNotFound)
}
