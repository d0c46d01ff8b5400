package actions

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type updateRequest struct {
	Username      string `json:"username" validate:"required"`
	NewUsername   string `json:"newusername" validate:"required"`
	LoginDisabled string `json:"loginDisabled" validate:"required"`
	GivenName     string `json:"givenName" validate:"required"`
	Sn            string `json:"sn" validate:"required"`
}

func newUpdateRequest(a UserAction) updateRequest {
	return updateRequest{
		Username:      a.Username,
		NewUsername:   a.NewUsername,
		LoginDisabled: a.LoginDisabled,
		GivenName:     a.GivenName,
		Sn:            a.Sn,
	}
}

type deleteRequest struct {
	Username string `json:"username" validate:"required"`
}

// missingField returns the input name of the first empty required field
// of req, in declaration order, or "" when all are present.
func missingField(req any) (string, error) {
	err := validate.Struct(req)
	if err == nil {
		return "", nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), nil
	}
	return "", err
}
