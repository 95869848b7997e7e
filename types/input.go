package types

// JobInput is the payload accepted when creating a Job.
type JobInput struct {
	Title    string `json:"title" validate:"required,min=2,max=30"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// SubJobInput is the payload accepted when creating a SubJob. The parent
// job always comes from the route.
type SubJobInput struct {
	Title    string `json:"title" validate:"required,min=2,max=30"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// QuestionInput is the payload accepted when creating a Question.
type QuestionInput struct {
	Title       string `json:"title" validate:"required,min=2,max=30"`
	Description string `json:"description" validate:"required"`
}

// SignupInput is the payload accepted when registering a new account.
type SignupInput struct {
	Username string `json:"username" validate:"required,min=2,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the payload accepted when exchanging credentials for a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Auth  bool   `json:"auth"`
	Token string `json:"token"`
}
