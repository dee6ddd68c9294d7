package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "javaterra/internal/config"
	"javaterra/internal/domain/models"
	"javaterra/internal/http/middleware"
	"javaterra/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

var bookingCols = []string{
	"id", "booking_id", "departure", "destination", "date", "time",
	"bus_type", "quantity", "total_price", "username", "birth_date", "email", "address", "phone",
	"payment_status", "booking_status", "created_at",
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})
	return mock
}

func withSessions(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager("handler-test-secret-0123456789abcdef", time.Hour, false)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	prev := sessionManager()
	SetSessionManager(m)
	t.Cleanup(func() { SetSessionManager(prev) })
	return m
}

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Session(Authenticator()))
	r.NoRoute(NotFound)
	r.POST("/api/create-booking", CreateBooking)
	r.POST("/api/search-bookings", SearchBookings)
	r.GET("/api/booking/:bookingId", GetBooking)
	r.GET("/api/booking/:bookingId/ticket", GetBookingTicketPDF)
	r.POST("/admin/login", Login)
	r.GET("/admin/logout", Logout)
	adminAPI := r.Group("/admin/api", middleware.RequireAdmin())
	adminAPI.GET("/bookings", AdminListBookings)
	adminAPI.PUT("/booking/:id/status", AdminUpdateBookingStatus)
	adminAPI.DELETE("/booking/:id", AdminDeleteBooking)
	return r
}

func do(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return out
}

func adminCookie(t *testing.T, m *session.Manager) *http.Cookie {
	t.Helper()
	token, _, err := m.Issue(models.Admin{ID: 1, Username: "ops"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &http.Cookie{Name: session.CookieName, Value: token}
}

const validBooking = `{
	"departure": "Jakarta", "destination": "Yogyakarta",
	"date": "2025-07-01", "time": "07:30", "busType": "Executive",
	"quantity": "2", "totalPrice": 700000,
	"username": "Alice", "birth": "1990-01-01", "email": "alice@example.com",
	"address": "Jl. Merdeka 1", "phone": "0812000111",
	"payment_status": "paid", "booking_status": "confirmed"
}`

func TestCreateBookingAcceptsLooseTypesAndForcesStatuses(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "Jakarta", "Yogyakarta", "2025-07-01", "07:30",
			"Executive", 2, "700000", "Alice", "1990-01-01",
			"alice@example.com", "Jl. Merdeka 1", "0812000111", "not_paid", "pending").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := do(testEngine(), http.MethodPost, "/api/create-booking", validBooking)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["success"] != true || body["message"] != "Booking created successfully" {
		t.Fatalf("unexpected body %v", body)
	}
	id, _ := body["booking_id"].(string)
	if !strings.HasPrefix(id, "JVT") || len(id) != 11 {
		t.Fatalf("unexpected booking id %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingMissingField(t *testing.T) {
	mock := withMockDB(t)

	payload := strings.Replace(validBooking, `"busType": "Executive",`, "", 1)
	w := do(testEngine(), http.MethodPost, "/api/create-booking", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != false || body["error"] != "busType is required" {
		t.Fatalf("unexpected body %v", body)
	}
	if body["request_id"] == "" || body["request_id"] == nil {
		t.Fatalf("expected request_id in error payload")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store must not be touched: %v", err)
	}
}

func TestCreateBookingBadBodies(t *testing.T) {
	withMockDB(t)
	r := testEngine()

	cases := map[string]string{
		"empty":        "",
		"not json":     "{oops",
		"bad quantity": strings.Replace(validBooking, `"quantity": "2"`, `"quantity": "two"`, 1),
		"zero seats":   strings.Replace(validBooking, `"quantity": "2"`, `"quantity": 0`, 1),
		"blank name":   strings.Replace(validBooking, `"username": "Alice"`, `"username": "   "`, 1),
		"object field": strings.Replace(validBooking, `"departure": "Jakarta"`, `"departure": {"x": 1}`, 1),
		"array field":  strings.Replace(validBooking, `"phone": "0812000111"`, `"phone": ["0812"]`, 1),
	}
	for name, payload := range cases {
		w := do(r, http.MethodPost, "/api/create-booking", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, w.Code, w.Body.String())
		}
		if decode(t, w)["success"] != false {
			t.Fatalf("%s: expected success=false", name)
		}
	}
}

func TestCreateBookingStoreErrorIsRaw400(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(errString("disk I/O error"))

	w := do(testEngine(), http.MethodPost, "/api/create-booking", validBooking)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "disk I/O error" {
		t.Fatalf("expected raw store message, got %v", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestSearchBookings(t *testing.T) {
	mock := withMockDB(t)
	r := testEngine()

	w := do(r, http.MethodPost, "/api/search-bookings", `{"name": "  "}`)
	if w.Code != http.StatusBadRequest || decode(t, w)["error"] != "Name is required" {
		t.Fatalf("blank name: got %d %s", w.Code, w.Body.String())
	}

	mock.ExpectQuery("FROM bookings WHERE LOWER\\(username\\) LIKE LOWER\\(\\?\\)").
		WithArgs("%Bob%").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			3, "JVTAAAA2222", "Jakarta", "Bandung", "2025-06-01", "08:00",
			"Economy", 1, "Rp 150.000", "Bob Smith", "1991-02-02", "bob@example.com", "Jl. Secret 9", "0813",
			"not_paid", "pending", "2025-06-01 00:00:00"))

	w = do(r, http.MethodPost, "/api/search-bookings", `{"name": " Bob "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", body["count"])
	}
	first := body["bookings"].([]any)[0].(map[string]any)
	if _, ok := first["address"]; ok {
		t.Fatalf("search results must not expose address")
	}
	if _, ok := first["birth_date"]; ok {
		t.Fatalf("search results must not expose birth_date")
	}
	if first["username"] != "Bob Smith" {
		t.Fatalf("unexpected row %v", first)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("FROM bookings WHERE booking_id = \\?").
		WithArgs("JVTNOPE0000").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	w := do(testEngine(), http.MethodGet, "/api/booking/JVTNOPE0000", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Booking not found" {
		t.Fatalf("unexpected error %v", got)
	}
}

func TestGetBookingTicketPDF(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("FROM bookings WHERE booking_id = \\?").
		WithArgs("JVTAAAA2222").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			3, "JVTAAAA2222", "Jakarta", "Bandung", "2025-06-01", "08:00",
			"Economy", 1, "Rp 150.000", "Bob Smith", "1991-02-02", "bob@example.com", "Jl. Secret 9", "0813",
			"not_paid", "pending", "2025-06-01 00:00:00"))

	w := do(testEngine(), http.MethodGet, "/api/booking/JVTAAAA2222/ticket", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("body is not a PDF")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "ETICKET_JVTAAAA2222.pdf") {
		t.Fatalf("unexpected disposition %q", cd)
	}
}

func TestAdminAPIRequiresSession(t *testing.T) {
	mock := withMockDB(t)
	withSessions(t)
	r := testEngine()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/admin/api/bookings", ""},
		{http.MethodPut, "/admin/api/booking/1/status", `{"booking_status":"confirmed"}`},
		{http.MethodDelete, "/admin/api/booking/1", ""},
	} {
		w := do(r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
		body := decode(t, w)
		if body["success"] != false || body["error"] != "Unauthorized" {
			t.Fatalf("unexpected 401 body %v", body)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store must not be touched: %v", err)
	}
}

func TestAdminListUpdateDelete(t *testing.T) {
	mock := withMockDB(t)
	cookie := adminCookie(t, withSessions(t))
	r := testEngine()

	mock.ExpectQuery("FROM bookings WHERE 1=1 AND booking_status = \\? ORDER BY created_at DESC, id DESC").
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(2, "JVTBBBB2222", "Jakarta", "Bandung", "2025-06-01", "08:00",
				"Economy", 1, "Rp 150.000", "Bob", "1991-02-02", "bob@example.com", "Jl. B", "0813",
				"not_paid", "pending", "2025-06-02 00:00:00").
			AddRow(1, "JVTAAAA1111", "Jakarta", "Solo", "2025-06-01", "09:00",
				"Business", 2, "Rp 500.000", "Alice", "1990-01-01", "alice@example.com", "Jl. A", "0812",
				"not_paid", "pending", "2025-06-01 00:00:00"))

	w := do(r, http.MethodGet, "/admin/api/bookings?status=pending&payment=all", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["count"] != float64(2) {
		t.Fatalf("expected 2 rows, got %v", body["count"])
	}
	first := body["bookings"].([]any)[0].(map[string]any)
	if first["address"] != "Jl. B" {
		t.Fatalf("admin listing should carry full records, got %v", first)
	}

	mock.ExpectExec("UPDATE bookings SET booking_status = \\? WHERE id = \\?").
		WithArgs("confirmed", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	w = do(r, http.MethodPut, "/admin/api/booking/99/status", `{"booking_status":"confirmed","payment_status":""}`, cookie)
	if w.Code != http.StatusOK || decode(t, w)["message"] != "Status updated successfully" {
		t.Fatalf("update: got %d %s", w.Code, w.Body.String())
	}

	mock.ExpectExec("DELETE FROM bookings WHERE id = \\?").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	w = do(r, http.MethodDelete, "/admin/api/booking/99", "", cookie)
	if w.Code != http.StatusOK || decode(t, w)["message"] != "Booking deleted successfully" {
		t.Fatalf("delete: got %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodDelete, "/admin/api/booking/abc", "", cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: expected 400, got %d", w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	withSessions(t)

	w := do(testEngine(), http.MethodGet, "/admin/logout", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != AdminLoginPath {
		t.Fatalf("expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
	}
	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, session.CookieName+"=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected cleared session cookie, got %q", setCookie)
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	w := do(testEngine(), http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != false || body["path"] != "/api/nope" || body["method"] != "GET" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestFlexInt(t *testing.T) {
	cases := map[string]int{`3`: 3, `"4"`: 4, `" 5 "`: 5, `2.0`: 2, `null`: 0, `""`: 0}
	for in, want := range cases {
		var n FlexInt
		if err := n.UnmarshalJSON([]byte(in)); err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if int(n) != want {
			t.Fatalf("%s: expected %d, got %d", in, want, n)
		}
	}
	var n FlexInt
	if err := n.UnmarshalJSON([]byte(`"2.5"`)); err == nil {
		t.Fatalf("expected error for fractional quantity")
	}
}

func TestStringish(t *testing.T) {
	cases := map[string]string{`"Jakarta"`: "Jakarta", `700000`: "700000", `true`: "true", `null`: ""}
	for in, want := range cases {
		var s Stringish
		if err := s.UnmarshalJSON([]byte(in)); err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if s.String() != want {
			t.Fatalf("%s: expected %q, got %q", in, want, s.String())
		}
	}
	for _, in := range []string{`{"x":1}`, `[1,2]`} {
		var s Stringish
		if err := s.UnmarshalJSON([]byte(in)); err == nil {
			t.Fatalf("%s: expected error", in)
		}
	}
}
