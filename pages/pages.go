package pages

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dailyjournal/tmpl"
)

const aboutContent = "This is your personal daily journal. Why waste books when you can access your journals online anytime, securely?"
const contactContent = "Email: support@dailyjournal.example"

// FormData feeds the login/register templates; Error carries the
// outcome of a failed submission back onto the form.
type FormData struct {
	Error string
}

func Landing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tmpl.Render(w, http.StatusOK, "start.html", nil)
}

func LoginForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tmpl.Render(w, http.StatusOK, "login.html", FormData{})
}

func RegisterForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tmpl.Render(w, http.StatusOK, "register.html", FormData{})
}

func About(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tmpl.Render(w, http.StatusOK, "about.html", map[string]string{"Content": aboutContent})
}

func Contact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tmpl.Render(w, http.StatusOK, "contact.html", map[string]string{"Content": contactContent})
}
