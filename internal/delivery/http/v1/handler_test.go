package v1_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "jbfsport-backend/internal/delivery/http/v1"
	"jbfsport-backend/internal/testutil"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	key         string
	contentType string
	body        []byte
}

func (f *fakeStore) UploadImage(_ context.Context, body io.Reader, contentType, ext string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.body = b
	f.contentType = contentType
	f.key = "products/fixed" + ext
	return "https://cdn.jbfsport.fr/" + f.key, nil
}

type server struct {
	app   *testutil.App
	mux   *http.ServeMux
	store *fakeStore
	token string
}

func newServer(t *testing.T, ping func(ctx context.Context) error) *server {
	t.Helper()
	app := testutil.NewApp(t)
	store := &fakeStore{}
	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog:      v1.NewCatalogHandler(app.Catalog),
		AdminCatalog: v1.NewAdminCatalogHandler(app.Taxonomy, app.Product),
		AdminBulk:    v1.NewAdminBulkHandler(app.Bulk, app.Featured),
		AdminStats:   v1.NewAdminStatsHandler(app.Stats),
		Auth:         v1.NewAuthHandler(app.Auth),
		Contact:      v1.NewContactHandler(app.Contact),
		Upload:       v1.NewUploadHandler(store, 1),
		Ping:         ping,
	})
	return &server{app: app, mux: mux, store: store}
}

// login creates an admin and keeps its token for later calls.
func (s *server) login(t *testing.T) {
	t.Helper()
	s.app.AddAdmin(t, "gerant", "s3cret!")
	rec := s.do(t, http.MethodPost, "/api/v1/admin/login", `{"username":"gerant","password":"s3cret!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	s.token = res.Token
}

func (s *server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestPublicPages(t *testing.T) {
	s := newServer(t, nil)
	seed := s.app.Seed(t)
	s.app.AddProduct(t, seed.Chaussures.ID, &seed.Moulees.ID, "boot", time.Now())

	rec := s.do(t, http.MethodGet, "/api/v1/pages/football", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "football", body["category"].(map[string]interface{})["slug"])
	assert.Len(t, body["breadcrumbs"], 2)

	rec = s.do(t, http.MethodGet, "/api/v1/pages/football/chaussures/moulees/products/boot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "boot", body["product"].(map[string]interface{})["sku"])

	rec = s.do(t, http.MethodGet, "/api/v1/pages/football/chaussures/products/boot", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/pages/football/chaussures/moulees", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/pages/tennis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "not found")

	rec = s.do(t, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tree []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	assert.Len(t, tree, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/subcategories/"+seed.Chaussures.ID+"/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/categories", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/login", `{"username":"gerant","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/v1/admin/login", `{"username":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminMe(t *testing.T) {
	s := newServer(t, nil)
	s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "gerant", user["username"])
	assert.Equal(t, "admin", user["role"])
}

func TestAdminCategoryLifecycle(t *testing.T) {
	s := newServer(t, nil)
	s.login(t)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/categories", `{"name":"Basket Ball","order":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decode(t, rec)
	assert.Equal(t, "basket-ball", cat["slug"])
	id := cat["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/categories", `{"name":"basket ball"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "already exists")

	rec = s.do(t, http.MethodPost, "/api/v1/admin/categories", `{"description":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decode(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/v1/admin/subcategories", `{"name":"Ballons","categoryId":"`+id+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/admin/categories/"+id, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/admin/categories/"+id, `{"name":"Basketball"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "basketball", decode(t, rec)["slug"])
	assert.EqualValues(t, 2, decode(t, rec)["order"])

	rec = s.do(t, http.MethodGet, "/api/v1/admin/categories/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/subcategories", `{"name":"Maillots","categoryId":"missing"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminProductEndpoints(t *testing.T) {
	s := newServer(t, nil)
	seed := s.app.Seed(t)
	s.login(t)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/products",
		`{"name":"Predator","sku":"PRED-1","priceTTC":129.9,"priceHT":108.25,"subSubCategoryId":"`+seed.Moulees.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode(t, rec)
	assert.Equal(t, "PRED-1", p["slug"])
	assert.Equal(t, seed.Chaussures.ID, p["subCategoryId"])
	id := p["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/products", `{"name":"Dup","sku":"PRED-1","price":1,"subCategoryId":"`+seed.Ballons.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/v1/admin/products/"+id+"/flags", `{"isFeatured":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["isFeatured"])

	rec = s.do(t, http.MethodGet, "/api/v1/products/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var featured []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &featured))
	assert.Len(t, featured, 1)

	rec = s.do(t, http.MethodDelete, "/api/v1/admin/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "product deleted", decode(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/v1/admin/products/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminBulkEndpoints(t *testing.T) {
	s := newServer(t, nil)
	seed := s.app.Seed(t)
	s.login(t)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/subcategories/bulk",
		`{"categoryId":"`+seed.Football.ID+`","subCategories":["Chaussures"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "no subcategory could be created", body["error"])
	assert.Len(t, body["details"], 1)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/products/bulk",
		`{"subCategoryId":"`+seed.Ballons.ID+`","text":"Ballon Match\nBallon Entrainement","price":"19.90","stock":4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body = decode(t, rec)
	assert.EqualValues(t, 2, body["created"])
	assert.Equal(t, "2 products created", body["message"])

	rec = s.do(t, http.MethodPost, "/api/v1/admin/products/featured/auto", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["updated"])

	rec = s.do(t, http.MethodPost, "/api/v1/admin/products/featured/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["updated"])

	rec = s.do(t, http.MethodGet, "/api/v1/admin/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["products"])
}

func TestContactEndpoints(t *testing.T) {
	s := newServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/contact", `{"name":"Jean","email":"not-an-email","subject":"Devis","message":"Bonjour"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", decode(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/v1/contact", `{"name":"Jean","email":"jean@club.fr","subject":"Devis","message":"<p>Bonjour</p>"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	s.login(t)
	rec = s.do(t, http.MethodGet, "/api/v1/admin/contact-messages?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	msgs := body["data"].([]interface{})
	require.Len(t, msgs, 1)
	assert.Equal(t, "Bonjour", msgs[0].(map[string]interface{})["message"])
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	s := newServer(t, nil)
	s.login(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	body, ct := multipartImage(t, "photo.PNG", png)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://cdn.jbfsport.fr/products/fixed.png", decode(t, rec)["url"])
	assert.Equal(t, "image/png", s.store.contentType)
	assert.Equal(t, png, s.store.body)

	body, ct = multipartImage(t, "notes.png", []byte("just some text pretending to be an image"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadWithoutStorage(t *testing.T) {
	h := v1.NewUploadHandler(nil, 1)
	rec := httptest.NewRecorder()
	h.UploadImage(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newServer(t, func(ctx context.Context) error { return nil })
	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newServer(t, func(ctx context.Context) error { return errors.New("connection refused") })
	rec = down.do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
