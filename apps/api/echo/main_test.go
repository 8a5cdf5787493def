package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/user"
	inmemdb "github.com/trezcool/saynoretake/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testApp struct {
	Server
	conf   *core.Config
	dir    *inmemdb.Directory
	logger *user.TestLogger
}

func testConfig() *core.Config {
	conf := new(core.Config)
	conf.AppName = "SayNoToRetake"
	conf.TestMode = true
	conf.SecretKey = "secret"
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Seed.AdviserName = "Nursat"
	conf.Seed.AdviserPassword = "SayNo"
	return conf
}

// setup starts a fresh, seeded app for every test.
func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testConfig()
	logger := user.NewTestLogger()
	dir := inmemdb.NewDirectory()
	inmemdb.Seed(dir, conf, logger)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	return &testApp{
		Server: NewServer(ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    user.NewService(dir, logger),
			Validate:   validate,
			Translator: translator,
		}),
		conf:   conf,
		dir:    dir,
		logger: logger,
	}
}

// token signs claims for `usr` the way /v1/login does.
func (app *testApp) token(t *testing.T, usr user.User) string {
	auth := newAuthenticator(app.conf)
	token, err := auth.GenerateToken(auth.userClaims(usr))
	if err != nil {
		t.Fatalf("token(): %v", err)
	}
	return token
}

func (app *testApp) studentToken(t *testing.T, name string) string {
	s, err := app.dir.GetStudent(name)
	if err != nil {
		t.Fatalf("studentToken(): %v", err)
	}
	return app.token(t, user.StudentUser(s))
}

func (app *testApp) adviserToken(t *testing.T) string {
	a, err := app.dir.GetAdviser()
	if err != nil {
		t.Fatalf("adviserToken(): %v", err)
	}
	return app.token(t, user.AdviserUser(a))
}

func (app *testApp) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
