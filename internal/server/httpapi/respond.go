package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitleveling/fitleveling/internal/common"
)

// User-facing messages. The login failure text is deliberately identical for
// unknown emails and wrong passwords, and server faults never leak detail.
const (
	msgInvalidCredentials = "Email hoặc mật khẩu không đúng"
	msgServerError        = "Lỗi server"
	msgBadRequest         = "Dữ liệu không hợp lệ"
	msgEmailTaken         = "Email đã tồn tại"
	msgNotFound           = "Không tìm thấy"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeServiceError maps a service sentinel to exactly one HTTP status and
// one generic message. Anything unrecognized is a server fault.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusConflict, msgEmailTaken)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	default:
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}
