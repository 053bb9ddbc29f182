package controllerImp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"genreport/database"
	"genreport/entities"
	svcImp "genreport/pkg/report/serviceImp"
	"genreport/pkg/topology"
)

func fp(v float64) *float64 { return &v }

func mustTopology(t *testing.T, doc string) *topology.Topology {
	t.Helper()
	top, err := topology.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("topology: %v", err)
	}
	return top
}

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	day := func(dd int) time.Time { return time.Date(2025, 6, dd, 0, 0, 0, 0, time.UTC) }
	daily := []entities.DailyProd{
		{FieldID: "A", ReportDate: day(9), ProdType: entities.OilProd, Amounts: entities.Amounts{ProdTon: fp(250), ProdBbls: fp(1750)}},
		{FieldID: "A", ReportDate: day(10), ProdType: entities.OilProd, Amounts: entities.Amounts{ProdTon: fp(260)}},
		{FieldID: "B", ReportDate: day(10), ProdType: entities.OilProd, Amounts: entities.Amounts{ProdTon: fp(100), ProdBbls: fp(700)}},
		{FieldID: "G", ReportDate: day(10), ProdType: entities.GasProd, Amounts: entities.Amounts{ProdM3: fp(1.23456), ProdFt3: fp(43.6)}},
	}
	if err := db.Create(&daily).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

type harness struct {
	e         *echo.Echo
	connected int
}

func newHarness(t *testing.T, connect func(database.Params) (*gorm.DB, error)) *harness {
	t.Helper()
	tops := map[string]*topology.Topology{
		"oil": mustTopology(t, "flavor: oil\ngroups:\n  - {id: AR, name: Alpha, members: [A]}\n  - {id: BR, name: Beta, members: [B]}\n"),
		"gas": mustTopology(t, "flavor: gas\ngroups:\n  - {id: GR, name: Gamma, members: [G]}\n"),
	}
	h := &harness{}
	svc := svcImp.NewReportService(tops, 2, zap.NewNop())
	wrapped := func(p database.Params) (*gorm.DB, error) {
		h.connected++
		return connect(p)
	}
	ctrl := New(svc, seededDB(t), wrapped, zap.NewNop())

	e := echo.New()
	e.POST("/report/oilreport", ctrl.OilReport)
	e.POST("/report/gasreport", ctrl.GasReport)
	e.POST("/report/:flavor/xlsx", ctrl.Download)
	e.GET("/report/topology/:flavor", ctrl.Topology)
	h.e = e
	return h
}

func (h *harness) post(target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func noConnect(database.Params) (*gorm.DB, error) { return nil, errors.New("unexpected connect") }

func TestOilReportFixedDecimals(t *testing.T) {
	h := newHarness(t, noConnect)
	rec := h.post("/report/oilreport", `{"query_date": "2025/06/10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	// A's 10 June record lacks bbls, so its row falls back to 9 June.
	if !strings.Contains(body, `"daily_primary":250.00`) || !strings.Contains(body, `"data_as_of":"09/06/2025"`) {
		t.Errorf("Alpha row not backed by 9 June: %s", body)
	}
	if !strings.Contains(body, `"daily_primary":100.00`) || !strings.Contains(body, `"data_as_of":"10/06/2025"`) {
		t.Errorf("Beta row not at requested date: %s", body)
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0]["group_id"] != "AR" || rows[1]["group_id"] != "BR" {
		t.Fatalf("rows = %v", rows)
	}
	if h.connected != 0 {
		t.Error("default database should be used without connection params")
	}
}

func TestGasReportRawFloats(t *testing.T) {
	h := newHarness(t, noConnect)
	rec := h.post("/report/gasreport", `{"query_date": "2025-06-10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"daily_primary":1.23456`) {
		t.Errorf("gas numbers should be raw: %s", rec.Body)
	}
}

func TestMalformedDateRejectedBeforeConnecting(t *testing.T) {
	h := newHarness(t, noConnect)
	for _, body := range []string{
		`{"query_date": "10/06/2025", "HOST": "db", "POSTGRES_DB": "prod"}`,
		`{"query_date": "2025/13/01"}`,
		`{"query_date": ""}`,
		`not json`,
	} {
		rec := h.post("/report/oilreport", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}
	if h.connected != 0 {
		t.Fatalf("connector called %d times for invalid requests", h.connected)
	}
}

func TestConnectionFailureFailsRequest(t *testing.T) {
	h := newHarness(t, func(database.Params) (*gorm.DB, error) {
		return nil, errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")
	})
	rec := h.post("/report/oilreport", `{"query_date": "2025/06/10", "POSTGRES_DB": "prod", "POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p", "HOST": "10.0.0.1", "PORT": 5432}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "group_id") {
		t.Fatal("partial report returned")
	}
	if h.connected != 1 {
		t.Fatalf("connector calls = %d", h.connected)
	}
}

func TestRequestConnectionParamsSelectStore(t *testing.T) {
	var got database.Params
	other, err := database.OpenSQLite(filepath.Join(t.TempDir(), "other.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h := newHarness(t, func(p database.Params) (*gorm.DB, error) {
		got = p
		return other, nil
	})
	rec := h.post("/report/oilreport", `{"query_date": "2025/06/10", "POSTGRES_DB": "prod", "POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p", "HOST": "db.internal", "PORT": 6543}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if got.Host != "db.internal" || got.Port != 6543 || got.DBName != "prod" {
		t.Fatalf("params = %+v", got)
	}
	// The empty store yields zero rows stamped with the requested date.
	if !strings.Contains(rec.Body.String(), `"daily_primary":0.00`) {
		t.Errorf("expected zeros from the empty store: %s", rec.Body)
	}
}

func TestDownloadXLSX(t *testing.T) {
	h := newHarness(t, noConnect)
	rec := h.post("/report/oil/xlsx", `{"query_date": "2025/06/10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "daily_oil_report_20250610.xlsx") {
		t.Errorf("disposition = %q", cd)
	}
	if rec.Body.Len() == 0 || !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("body is not a zip container")
	}

	if rec := h.post("/report/coal/xlsx", `{"query_date": "2025/06/10"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown flavor status = %d", rec.Code)
	}
}

func TestTopologyEndpoint(t *testing.T) {
	h := newHarness(t, noConnect)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/topology/gas", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Gamma"`) {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	rec = httptest.NewRecorder()
	h.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/topology/coal", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown flavor status = %d", rec.Code)
	}
}
