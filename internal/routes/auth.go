package routes

import (
	"errors"
	"net/http"
	"time"

	"gitlab.com/ranfdev/dailyreport/internal/domain"
)

type loginPage struct {
	page
	Code string
}

func (routes *Routes) GetLogin(w http.ResponseWriter, r *http.Request) AppError {
	if GetPrincipal(r) != nil {
		http.Redirect(w, r, "/reports", http.StatusSeeOther)
		return nil
	}
	routes.tmpls.RenderHTML(w, "login", loginPage{page: newPage(r)})
	return nil
}

func (routes *Routes) PostLogin(w http.ResponseWriter, r *http.Request) AppError {
	code := r.FormValue("code")
	token, err := routes.auth.Login(r.Context(), code, r.FormValue("password"))
	if errors.Is(err, domain.ErrBadCredentials) {
		data := loginPage{page: newPage(r), Code: code}
		msg, _ := domain.MessageFor(err)
		data.addError(msg)
		routes.tmpls.RenderHTMLStatus(w, http.StatusUnauthorized, "login", data)
		return nil
	} else if err != nil {
		return &ErrInternal{Message: "Error logging in", Cause: err}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(routes.envConfig.SessionTTL),
		HttpOnly: true,
		Secure:   !routes.envConfig.Debug,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
	return nil
}

func (routes *Routes) PostLogout(w http.ResponseWriter, r *http.Request) AppError {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		err := routes.auth.Logout(r.Context(), cookie.Value)
		if err != nil {
			return &ErrInternal{Message: "Error logging out", Cause: err}
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return nil
}
