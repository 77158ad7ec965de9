package gate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ledger/auth/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGate(t *testing.T) (*Gate, *token.Codec) {
	t.Helper()
	codec, err := token.NewCodec(token.Config{Secret: "gate-test-secret"})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return New(codec, Config{}, nil), codec
}

func newRouter(g *Gate) *gin.Engine {
	r := gin.New()
	r.GET("/private", g.Require(), func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	g, codec := newGate(t)
	raw, err := codec.Issue(token.Claims{ID: 3, Username: "alice"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid", "token=" + raw, false},
		{"valid among other cookies", "theme=dark; token=" + raw + "; lang=en", false},
		{"no cookie header", "", true},
		{"other cookie only", "theme=dark", true},
		{"empty value", "token=", true},
		{"name as prefix of another cookie", "xtoken=" + raw, true},
		{"corrupted", "token=" + raw[:len(raw)-2] + "xx", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Cookie", tc.header)
			}
			claims, err := g.Authenticate(req)
			if tc.wantErr {
				if err != ErrUnauthenticated {
					t.Errorf("expected ErrUnauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.ID != 3 || claims.Username != "alice" {
				t.Errorf("unexpected claims %+v", claims)
			}
		})
	}
}

func TestRequire_UniformRejection(t *testing.T) {
	g, codec := newGate(t)
	raw, err := codec.Issue(token.Claims{ID: 3, Username: "alice"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	router := newRouter(g)

	do := func(cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	noCookie := do("")
	corrupted := do("token=" + strings.Replace(raw, ".", ".x", 1))

	if noCookie.Code != http.StatusUnauthorized || corrupted.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", noCookie.Code, corrupted.Code)
	}
	if noCookie.Body.String() != corrupted.Body.String() {
		t.Errorf("rejections differ:\n%s\n%s", noCookie.Body.String(), corrupted.Body.String())
	}
	if !strings.Contains(noCookie.Body.String(), `"UNAUTHORIZED"`) {
		t.Errorf("expected UNAUTHORIZED code, got %s", noCookie.Body.String())
	}

	ok := do("token=" + raw)
	if ok.Code != http.StatusOK || ok.Body.String() != "alice" {
		t.Errorf("expected 200 alice, got %d %s", ok.Code, ok.Body.String())
	}
}

func TestSetSession(t *testing.T) {
	g, _ := newGate(t)
	w := httptest.NewRecorder()
	g.SetSession(w, "abc.def.ghi")

	header := w.Header().Get("Set-Cookie")
	for _, attr := range []string{"token=abc.def.ghi", "Path=/", "Max-Age=86400", "HttpOnly", "Secure", "SameSite=Strict"} {
		if !strings.Contains(header, attr) {
			t.Errorf("Set-Cookie %q missing %s", header, attr)
		}
	}
}

func TestClearSession(t *testing.T) {
	g, _ := newGate(t)
	w := httptest.NewRecorder()
	g.ClearSession(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "token" || c.Value != "" {
		t.Errorf("expected empty token cookie, got %s=%q", c.Name, c.Value)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Errorf("expected Max-Age=0, got %s", w.Header().Get("Set-Cookie"))
	}
	if !c.Expires.Equal(time.Unix(0, 0)) {
		t.Errorf("expected epoch expiry, got %v", c.Expires)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("cleared cookie must keep its attributes: %+v", c)
	}
}
