package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"javaterra/internal/domain"
	"javaterra/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	sessionsMu sync.RWMutex
	sessions   *session.Manager
)

// SetSessionManager installs the manager used to issue admin sessions.
func SetSessionManager(m *session.Manager) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	sessions = m
}

func sessionManager() *session.Manager {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	return sessions
}

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validator report fields by their JSON key so
// messages read "busType is required" rather than "BusType".
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// Stringish accepts a JSON string, number or bool and keeps it as text.
type Stringish string

func (s *Stringish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
		return nil
	case len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Stringish(str)
		return nil
	case b[0] == '{' || b[0] == '[':
		return errors.New("expected a string, number or boolean")
	default:
		*s = Stringish(b)
		return nil
	}
}

func (s Stringish) String() string { return strings.TrimSpace(string(s)) }

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" || len(b) == 0 {
		*n = 0
		return nil
	}
	raw := strings.TrimSpace(strings.Trim(string(b), `"`))
	if raw == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("%q is not an integer", raw)
		}
		v = int(f)
	}
	*n = FlexInt(v)
	return nil
}

// bindJSON decodes and validates the body into dst. Failures come back as
// a domain.ValidationError naming the first offending field.
func bindJSON(c *gin.Context, dst any) error {
	useJSONFieldNames()
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return domain.ValidationError{Msg: "Request body is required"}
	}
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.ValidationError{Field: fe.Field(), Err: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.ValidationError{Field: typeErr.Field, Msg: "Invalid value for " + typeErr.Field, Err: err}
	}
	return domain.ValidationError{Msg: "Invalid JSON payload: " + err.Error(), Err: err}
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: name, Msg: "Invalid booking id"}
	}
	return id, nil
}
