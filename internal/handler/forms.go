package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var formValidator = newFormValidator()

// newFormValidator настраивает validator так, чтобы в ошибках
// фигурировали имена полей формы (json-теги), а не имена Go-полей.
func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterForm — форма регистрации. Лимиты длины совпадают со схемой бд.
type RegisterForm struct {
	Username  string `json:"username" validate:"required,max=20"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"required,email,max=50"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
}

// LoginForm — форма входа.
type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EditForm — форма редактирования профиля.
// Пустой пароль означает "не менять".
type EditForm struct {
	Username  string `json:"username" validate:"required,max=20"`
	Email     string `json:"email" validate:"required,email,max=50"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Password  string `json:"password" validate:"omitempty,min=6"`
}

// BookmarkForm — поля закладки, приходящие со страницы результатов поиска.
type BookmarkForm struct {
	BrandName        string `json:"brand_name" validate:"required"`
	GenericName      string `json:"generic_name" validate:"required"`
	ActiveIngredient string `json:"active_ingredient"`
	Purpose          string `json:"purpose"`
	Warnings         string `json:"warnings"`
	Indications      string `json:"indications_and_usage"`
	Dosage           string `json:"dosage_and_administration"`
	AdverseReactions string `json:"adverse_reactions"`
	Storage          string `json:"storage"`
}

// decodeForm разбирает тело запроса в форму: JSON по Content-Type,
// иначе обычная form-encoded отправка.
func decodeForm(r *http.Request, dst interface{}) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}

	switch form := dst.(type) {
	case *RegisterForm:
		form.Username = r.PostFormValue("username")
		form.Password = r.PostFormValue("password")
		form.Email = r.PostFormValue("email")
		form.FirstName = r.PostFormValue("first_name")
		form.LastName = r.PostFormValue("last_name")
	case *LoginForm:
		form.Username = r.PostFormValue("username")
		form.Password = r.PostFormValue("password")
	case *EditForm:
		form.Username = r.PostFormValue("username")
		form.Email = r.PostFormValue("email")
		form.FirstName = r.PostFormValue("first_name")
		form.LastName = r.PostFormValue("last_name")
		form.Password = r.PostFormValue("password")
	case *BookmarkForm:
		form.BrandName = r.PostFormValue("brand_name")
		form.GenericName = r.PostFormValue("generic_name")
		form.ActiveIngredient = r.PostFormValue("active_ingredient")
		form.Purpose = r.PostFormValue("purpose")
		form.Warnings = r.PostFormValue("warnings")
		form.Indications = r.PostFormValue("indications_and_usage")
		form.Dosage = r.PostFormValue("dosage_and_administration")
		form.AdverseReactions = r.PostFormValue("adverse_reactions")
		form.Storage = r.PostFormValue("storage")
	}
	return nil
}

// validateForm прогоняет форму через validator и собирает ошибки по полям.
// Возвращает nil, если форма валидна.
func validateForm(form interface{}) map[string]string {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrors := map[string]string{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["form"] = "Некорректные данные формы"
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			fieldErrors[field] = "Поле обязательно для заполнения"
		case "email":
			fieldErrors[field] = "Некорректный email"
		case "max":
			fieldErrors[field] = "Значение слишком длинное"
		case "min":
			fieldErrors[field] = "Значение слишком короткое"
		default:
			fieldErrors[field] = "Некорректное значение"
		}
	}
	return fieldErrors
}
