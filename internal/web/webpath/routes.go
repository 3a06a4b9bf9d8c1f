package webpath

const (
	Home   = "/"
	Health = "/health"
	Signup = "/signup"
	Signin = "/signin"
)
