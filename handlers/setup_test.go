package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jsponceA/api-express-tienda/handlers"
	"github.com/jsponceA/api-express-tienda/models"
	"github.com/jsponceA/api-express-tienda/routes"
	"github.com/jsponceA/api-express-tienda/store"
	"github.com/jsponceA/api-express-tienda/upload"
)

// In-memory fakes implementing the handler-side store interfaces. They
// enforce the same unique rules as the real postgres schema so the
// conflict fallback paths are exercised.

type fakeProductStore struct {
	seq       uint
	items     map[uint]models.Product
	createErr error
	updateErr error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{items: make(map[uint]models.Product)}
}

func (f *fakeProductStore) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	p.ID = f.seq
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *models.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p.UpdatedAt = time.Now()
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, p *models.Product) error {
	delete(f.items, p.ID)
	return nil
}

type fakeBookStore struct {
	seq   uint
	items map[uint]models.Book
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{items: make(map[uint]models.Book)}
}

func (f *fakeBookStore) isbnTaken(isbn *string, selfID uint) bool {
	if isbn == nil {
		return false
	}
	for _, b := range f.items {
		if b.ID != selfID && b.ISBN != nil && *b.ISBN == *isbn {
			return true
		}
	}
	return false
}

func (f *fakeBookStore) List(ctx context.Context) ([]models.Book, error) {
	out := make([]models.Book, 0, len(f.items))
	for _, b := range f.items {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookStore) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (f *fakeBookStore) Create(ctx context.Context, b *models.Book) error {
	if f.isbnTaken(b.ISBN, 0) {
		return store.ErrDuplicate
	}
	f.seq++
	b.ID = f.seq
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.items[b.ID] = *b
	return nil
}

func (f *fakeBookStore) Update(ctx context.Context, b *models.Book) error {
	if f.isbnTaken(b.ISBN, b.ID) {
		return store.ErrDuplicate
	}
	b.UpdatedAt = time.Now()
	f.items[b.ID] = *b
	return nil
}

func (f *fakeBookStore) Delete(ctx context.Context, b *models.Book) error {
	delete(f.items, b.ID)
	return nil
}

type fakeCustomerStore struct {
	seq   uint
	items map[uint]models.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{items: make(map[uint]models.Customer)}
}

func (f *fakeCustomerStore) emailTaken(email string, selfID uint) bool {
	for _, cu := range f.items {
		if cu.ID != selfID && cu.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeCustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.items))
	for _, cu := range f.items {
		out = append(out, cu)
	}
	return out, nil
}

func (f *fakeCustomerStore) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	cu, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cu
	return &cp, nil
}

func (f *fakeCustomerStore) Create(ctx context.Context, cu *models.Customer) error {
	if f.emailTaken(cu.Email, 0) {
		return store.ErrDuplicate
	}
	f.seq++
	cu.ID = f.seq
	cu.CreatedAt = time.Now()
	cu.UpdatedAt = cu.CreatedAt
	f.items[cu.ID] = *cu
	return nil
}

func (f *fakeCustomerStore) Update(ctx context.Context, cu *models.Customer) error {
	if f.emailTaken(cu.Email, cu.ID) {
		return store.ErrDuplicate
	}
	cu.UpdatedAt = time.Now()
	f.items[cu.ID] = *cu
	return nil
}

func (f *fakeCustomerStore) Delete(ctx context.Context, cu *models.Customer) error {
	delete(f.items, cu.ID)
	return nil
}

type fakeStudentStore struct {
	seq         uint
	items       map[uint]models.Student
	enrollments *fakeEnrollmentStore
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{items: make(map[uint]models.Student)}
}

func (f *fakeStudentStore) taken(st *models.Student, selfID uint) bool {
	for _, s := range f.items {
		if s.ID == selfID {
			continue
		}
		if s.Email == st.Email || s.StudentCode == st.StudentCode {
			return true
		}
	}
	return false
}

func (f *fakeStudentStore) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(f.items))
	for _, s := range f.items {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (f *fakeStudentStore) Create(ctx context.Context, st *models.Student) error {
	if f.taken(st, 0) {
		return store.ErrDuplicate
	}
	f.seq++
	st.ID = f.seq
	st.CreatedAt = time.Now()
	st.UpdatedAt = st.CreatedAt
	f.items[st.ID] = *st
	return nil
}

func (f *fakeStudentStore) Update(ctx context.Context, st *models.Student) error {
	if f.taken(st, st.ID) {
		return store.ErrDuplicate
	}
	st.UpdatedAt = time.Now()
	f.items[st.ID] = *st
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, st *models.Student) error {
	delete(f.items, st.ID)
	return nil
}

func (f *fakeStudentStore) EnrollmentCount(ctx context.Context, studentID uint) (int64, error) {
	if f.enrollments == nil {
		return 0, nil
	}
	var n int64
	for _, e := range f.enrollments.items {
		if e.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

type fakeEnrollmentStore struct {
	seq      uint
	items    map[uint]models.Enrollment
	students *fakeStudentStore
}

func newFakeEnrollmentStore(students *fakeStudentStore) *fakeEnrollmentStore {
	f := &fakeEnrollmentStore{items: make(map[uint]models.Enrollment), students: students}
	students.enrollments = f
	return f
}

func (f *fakeEnrollmentStore) withStudent(e models.Enrollment) models.Enrollment {
	if s, ok := f.students.items[e.StudentID]; ok {
		e.Student = &models.StudentSummary{
			ID:          s.ID,
			StudentCode: s.StudentCode,
			FirstName:   s.FirstName,
			LastName:    s.LastName,
			Email:       s.Email,
		}
	}
	return e
}

func (f *fakeEnrollmentStore) List(ctx context.Context) ([]models.Enrollment, error) {
	out := make([]models.Enrollment, 0, len(f.items))
	for _, e := range f.items {
		out = append(out, f.withStudent(e))
	}
	return out, nil
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := f.withStudent(e)
	return &cp, nil
}

func (f *fakeEnrollmentStore) ListByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	for _, e := range f.items {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) FindTuple(ctx context.Context, studentID uint, course, semester, academicYear string) (*models.Enrollment, error) {
	for _, e := range f.items {
		if e.StudentID == studentID && e.Course == course && e.Semester == semester && e.AcademicYear == academicYear {
			cp := e
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, e *models.Enrollment) error {
	if dup, err := f.FindTuple(ctx, e.StudentID, e.Course, e.Semester, e.AcademicYear); err == nil && dup != nil {
		return store.ErrDuplicate
	}
	f.seq++
	e.ID = f.seq
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.items[e.ID] = *e
	return nil
}

func (f *fakeEnrollmentStore) Update(ctx context.Context, e *models.Enrollment) error {
	e.UpdatedAt = time.Now()
	f.items[e.ID] = *e
	return nil
}

func (f *fakeEnrollmentStore) Delete(ctx context.Context, e *models.Enrollment) error {
	delete(f.items, e.ID)
	return nil
}

// server bundles the echo instance and the fakes behind it.
type server struct {
	e           *echo.Echo
	uploads     *upload.Saver
	products    *fakeProductStore
	books       *fakeBookStore
	customers   *fakeCustomerStore
	students    *fakeStudentStore
	enrollments *fakeEnrollmentStore
}

func newServer(t *testing.T) *server {
	t.Helper()

	s := &server{
		uploads:   upload.NewSaver(t.TempDir(), upload.DefaultMaxSize),
		products:  newFakeProductStore(),
		books:     newFakeBookStore(),
		customers: newFakeCustomerStore(),
		students:  newFakeStudentStore(),
	}
	s.enrollments = newFakeEnrollmentStore(s.students)

	s.e = echo.New()
	routes.Register(s.e, routes.Handlers{
		Products:    handlers.NewProductHandler(s.products, s.uploads),
		Books:       handlers.NewBookHandler(s.books),
		Customers:   handlers.NewCustomerHandler(s.customers, s.uploads),
		Students:    handlers.NewStudentHandler(s.students, s.uploads),
		Enrollments: handlers.NewEnrollmentHandler(s.enrollments, s.students),
	})
	return s
}

// do sends a JSON request through the router and returns the recorder.
func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	var rd bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&rd).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// decode parses the recorded JSON body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
