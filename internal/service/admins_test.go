package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// fakeAdminBackend — подмена backend API для тестов.
type fakeAdminBackend struct {
	admins      map[int64]*model.AdminAccount
	nextID      int64
	deleteCalls atomic.Int64
	updateCalls atomic.Int64
}

func newFakeAdminBackend(admins ...*model.AdminAccount) *fakeAdminBackend {
	f := &fakeAdminBackend{admins: make(map[int64]*model.AdminAccount), nextID: 100}
	for _, a := range admins {
		f.admins[a.ID] = a
	}
	return f
}

func (f *fakeAdminBackend) ListAdmins(_ context.Context) ([]model.AdminAccount, error) {
	var out []model.AdminAccount
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdminBackend) CreateAdmin(_ context.Context, email, name, password string, isSuperAdmin bool) (*model.AdminAccount, error) {
	f.nextID++
	a := &model.AdminAccount{ID: f.nextID, Email: email, Name: name, IsActive: true, IsSuperAdmin: isSuperAdmin}
	f.admins[a.ID] = a
	return a, nil
}

func (f *fakeAdminBackend) UpdateAdmin(_ context.Context, id int64, update backend.AdminUpdate) (*model.AdminAccount, error) {
	f.updateCalls.Add(1)
	a, ok := f.admins[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.IsActive != nil {
		a.IsActive = *update.IsActive
	}
	if update.IsSuperAdmin != nil {
		a.IsSuperAdmin = *update.IsSuperAdmin
	}
	return a, nil
}

func (f *fakeAdminBackend) DeleteAdmin(_ context.Context, id int64) error {
	f.deleteCalls.Add(1)
	delete(f.admins, id)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func superAdmin(id int64, email string) *model.AdminAccount {
	return &model.AdminAccount{ID: id, Email: email, Name: "Admin", IsActive: true, IsSuperAdmin: true}
}

func TestAdminCreate_Validation(t *testing.T) {
	fb := newFakeAdminBackend()
	svc := NewAdminService(fb, nil, testLogger())

	tests := []struct {
		name     string
		email    string
		admName  string
		password string
	}{
		{"некорректный email", "not-an-email", "Имя", "correct-horse-battery"},
		{"пустое имя", "a@haqnow.com", "  ", "correct-horse-battery"},
		{"короткий пароль", "a@haqnow.com", "Имя", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.email, tt.admName, tt.password, false, "root@haqnow.com")
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Create() = %v, ожидается ErrValidation", err)
			}
		})
	}
}

func TestAdminCreate_OK(t *testing.T) {
	fb := newFakeAdminBackend()
	svc := NewAdminService(fb, nil, testLogger())

	a, err := svc.Create(context.Background(), "new@haqnow.com", "Новый администратор", "correct-horse-battery", true, "root@haqnow.com")
	if err != nil {
		t.Fatalf("Create() вернул ошибку: %v", err)
	}
	if !a.IsSuperAdmin {
		t.Error("IsSuperAdmin = false, ожидается true")
	}
}

func TestAdminDelete_Self(t *testing.T) {
	fb := newFakeAdminBackend(superAdmin(1, "root@haqnow.com"))
	svc := NewAdminService(fb, nil, testLogger())

	err := svc.Delete(context.Background(), 1, 1, "root@haqnow.com")
	if !errors.Is(err, ErrSelfAction) {
		t.Errorf("Delete() себя = %v, ожидается ErrSelfAction", err)
	}
	if n := fb.deleteCalls.Load(); n != 0 {
		t.Errorf("backend вызван %d раз при самоудалении, ожидается 0", n)
	}
}

func TestAdminDelete_Other(t *testing.T) {
	fb := newFakeAdminBackend(superAdmin(1, "root@haqnow.com"), superAdmin(2, "other@haqnow.com"))
	svc := NewAdminService(fb, nil, testLogger())

	if err := svc.Delete(context.Background(), 2, 1, "root@haqnow.com"); err != nil {
		t.Fatalf("Delete() вернул ошибку: %v", err)
	}
	if _, ok := fb.admins[2]; ok {
		t.Error("администратор 2 не удалён")
	}
}

func TestAdminUpdate_SelfDemotion(t *testing.T) {
	fb := newFakeAdminBackend(superAdmin(1, "root@haqnow.com"))
	svc := NewAdminService(fb, nil, testLogger())

	_, err := svc.Update(context.Background(), 1, backend.AdminUpdate{IsSuperAdmin: boolPtr(false)}, 1, "root@haqnow.com")
	if !errors.Is(err, ErrSelfAction) {
		t.Errorf("Update() с понижением себя = %v, ожидается ErrSelfAction", err)
	}
	if n := fb.updateCalls.Load(); n != 0 {
		t.Errorf("backend вызван %d раз при самопонижении, ожидается 0", n)
	}
}

func TestAdminUpdate_SelfDeactivation(t *testing.T) {
	fb := newFakeAdminBackend(superAdmin(1, "root@haqnow.com"))
	svc := NewAdminService(fb, nil, testLogger())

	_, err := svc.Update(context.Background(), 1, backend.AdminUpdate{IsActive: boolPtr(false)}, 1, "root@haqnow.com")
	if !errors.Is(err, ErrSelfAction) {
		t.Errorf("Update() с отключением себя = %v, ожидается ErrSelfAction", err)
	}
}

func TestAdminUpdate_SelfRename_Allowed(t *testing.T) {
	fb := newFakeAdminBackend(superAdmin(1, "root@haqnow.com"))
	svc := NewAdminService(fb, nil, testLogger())

	name := "Новое имя"
	a, err := svc.Update(context.Background(), 1, backend.AdminUpdate{Name: &name}, 1, "root@haqnow.com")
	if err != nil {
		t.Fatalf("Update() собственного имени вернул ошибку: %v", err)
	}
	if a.Name != "Новое имя" {
		t.Errorf("Name = %q, ожидается «Новое имя»", a.Name)
	}
}

func TestAdminUpdate_DemoteOther_Allowed(t *testing.T) {
	fb := newFakeAdminBackend(superAdmin(1, "root@haqnow.com"), superAdmin(2, "other@haqnow.com"))
	svc := NewAdminService(fb, nil, testLogger())

	a, err := svc.Update(context.Background(), 2, backend.AdminUpdate{IsSuperAdmin: boolPtr(false)}, 1, "root@haqnow.com")
	if err != nil {
		t.Fatalf("Update() вернул ошибку: %v", err)
	}
	if a.IsSuperAdmin {
		t.Error("IsSuperAdmin = true, понижение другого администратора должно пройти")
	}
}
