package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
	"github.com/georgemunganga/printa-dashboard/internal/rest/resttest"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

func token(t *testing.T, role string) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func newTestService(t *testing.T) (Service, *resttest.Server, *session.MemoryStore) {
	srv := resttest.NewServer(t)
	store := session.NewMemoryStore(session.Context{})
	client := srv.Client(t, session.Credentials(store))
	return NewService(NewRESTRepository(client), store), srv, store
}

func TestLoginStoresSession(t *testing.T) {
	svc, srv, store := newTestService(t)
	tok := token(t, "Admin")
	srv.ReplyData(http.MethodPost, "/auth/login", map[string]string{"accessToken": tok})

	res, err := svc.Login(context.Background(), LoginRequest{Email: " boss@shop.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, res.Role)
	assert.Equal(t, "/dashboard/dashboard", res.Home)

	sess, _ := store.Load()
	assert.Equal(t, session.Context{Token: tok, Role: session.RoleAdmin}, sess)

	var body LoginRequest
	srv.Calls(http.MethodPost, "/auth/login")[0].Decode(t, &body)
	assert.Equal(t, "boss@shop.com", body.Email)
}

func TestLoginSalesUserLandsOnProspects(t *testing.T) {
	svc, srv, _ := newTestService(t)
	srv.ReplyData(http.MethodPost, "/auth/login", map[string]string{"accessToken": token(t, "salesUser")})

	res, err := svc.Login(context.Background(), LoginRequest{Email: "rep@shop.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/prospact", res.Home)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	svc, srv, store := newTestService(t)
	require.NoError(t, store.Save(session.Context{Token: "previous", Role: session.RoleUser}))
	srv.ReplyData(http.MethodPost, "/auth/login", map[string]string{"accessToken": token(t, "guest")})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "x@shop.com", Password: "pw"})
	f := form.Classify(err)
	assert.Equal(t, form.KindBusiness, f.Kind)
	assert.Equal(t, http.StatusForbidden, f.HTTPStatus())

	sess, _ := store.Load()
	assert.False(t, sess.Authenticated())
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	svc, srv, _ := newTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nope"})
	f := form.Classify(err)
	assert.Equal(t, form.KindValidation, f.Kind)
	assert.Equal(t, form.MsgEmail, f.Fields["email"])
	assert.Equal(t, form.MsgRequired, f.Fields["password"])
	assert.Equal(t, 0, srv.Total())
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	svc, srv, _ := newTestService(t)
	srv.Reply(http.MethodPost, "/auth/login", http.StatusUnauthorized, `{"success":false,"message":"Password do not matched"}`)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "x@shop.com", Password: "bad"})
	f := form.Classify(err)
	assert.Equal(t, form.KindBusiness, f.Kind)
	assert.Equal(t, "Password do not matched", f.Message)
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	svc, srv, store := newTestService(t)
	require.NoError(t, store.Save(session.Context{Token: "tok", Role: session.RoleAdmin}))
	srv.Reply(http.MethodPost, "/auth/logout", http.StatusInternalServerError, `{}`)

	require.NoError(t, svc.Logout(context.Background()))
	sess, _ := store.Load()
	assert.False(t, sess.Authenticated())

	calls := srv.Calls(http.MethodPost, "/auth/logout")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok", calls[0].Header.Get("Authorization"))
}

func TestPasswordReset(t *testing.T) {
	svc, srv, _ := newTestService(t)
	srv.ReplyData(http.MethodPost, "/user/forgot-password", nil)
	srv.ReplyData(http.MethodPost, "/user/reset-password", nil)

	require.NoError(t, svc.ForgotPassword(context.Background(), "rep@shop.com"))
	assert.Error(t, svc.ForgotPassword(context.Background(), ""))

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Email: "rep@shop.com"})
	f := form.Classify(err)
	assert.Equal(t, form.FieldErrors{"otp": form.MsgRequired, "newPassword": form.MsgRequired}, f.Fields)

	require.NoError(t, svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email: "rep@shop.com", OTP: "123456", NewPassword: "s3cret",
	}))
	var body map[string]string
	srv.Calls(http.MethodPost, "/user/reset-password")[0].Decode(t, &body)
	assert.Equal(t, map[string]string{"email": "rep@shop.com", "otp": "123456", "newPassword": "s3cret"}, body)
}

func TestSessionChangeDropsCachedResults(t *testing.T) {
	srv := resttest.NewServer(t)
	store := session.NewMemoryStore(session.Context{})
	client := srv.Client(t, session.Credentials(store))
	svc := NewService(NewRESTRepository(client), store)
	ctx := context.Background()

	srv.ReplyData(http.MethodPost, "/auth/login", map[string]string{"accessToken": token(t, "Admin")})
	srv.ReplyData(http.MethodPost, "/auth/logout", nil)
	srv.ReplyData(http.MethodGet, "/prospect", []map[string]string{{"_id": "admin-only"}})

	_, err := svc.Login(ctx, LoginRequest{Email: "boss@shop.com", Password: "pw"})
	require.NoError(t, err)
	var seen []map[string]string
	require.NoError(t, client.Query(ctx, endpoints.GetProspects, rest.NoArg, &seen))
	require.NoError(t, svc.Logout(ctx))

	sales := token(t, "salesUser")
	srv.ReplyData(http.MethodPost, "/auth/login", map[string]string{"accessToken": sales})
	srv.ReplyData(http.MethodGet, "/prospect", []map[string]string{{"_id": "p-7"}})
	_, err = svc.Login(ctx, LoginRequest{Email: "rep@shop.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, client.Query(ctx, endpoints.GetProspects, rest.NoArg, &seen))
	assert.Equal(t, []map[string]string{{"_id": "p-7"}}, seen)
	calls := srv.Calls(http.MethodGet, "/prospect")
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer "+sales, calls[1].Header.Get("Authorization"))
}
