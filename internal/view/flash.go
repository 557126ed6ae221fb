package view

import (
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	formKeyPrefix    = "form_"
)

// FlashData is the set of one-shot messages shown as toasts.
type FlashData struct {
	Success []string
	Error   []string
}

// HasMessages reports whether there is anything to show.
func (f FlashData) HasMessages() bool {
	return len(f.Success) > 0 || len(f.Error) > 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, ok := loadSession(c, flashSessionName)
	if !ok {
		return
	}
	sess.AddFlash(message, key)
	saveSession(c, sess)
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, ok := loadSession(c, flashSessionName)
	if !ok {
		return data
	}

	// Flashes() removes what it returns, so the session has to be saved
	// for the messages to disappear on the next request.
	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))
	if data.HasMessages() {
		saveSession(c, sess)
	}
	return data
}

// SetFormValue keeps a submitted value for the next render of the form,
// e.g. the email after a rejected sign-in.
func SetFormValue(c echo.Context, field, value string) {
	setFlash(c, formKeyPrefix+field, value)
}

// PopFormValue returns and clears a value stored with SetFormValue.
func PopFormValue(c echo.Context, field string) string {
	sess, ok := loadSession(c, flashSessionName)
	if !ok {
		return ""
	}
	values := toStrings(sess.Flashes(formKeyPrefix + field))
	if len(values) == 0 {
		return ""
	}
	saveSession(c, sess)
	return values[len(values)-1]
}

func toStrings(flashes []any) []string {
	if len(flashes) == 0 {
		return nil
	}
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
