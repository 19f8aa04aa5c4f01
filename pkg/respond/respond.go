package respond

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data) // статус уже отправлен, ошибку кодирования вернуть некуда
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, errorBody{Error: message})
}

// ErrorDetail добавляет пояснение, например какое поле не прошло валидацию.
func ErrorDetail(w http.ResponseWriter, r *http.Request, code int, message, detail string) {
	JSON(w, r, code, errorBody{Error: message, Detail: detail})
}
