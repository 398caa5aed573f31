package handlers

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/teamgrid/teamgrid/internal/dtos"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type HandlerFunc func(w http.ResponseWriter, r *http.Request) *app_error.AppError

func WrapHandler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			log.Error().Err(err).Msg(fmt.Sprintf("error occur, request id: %s", r.Header.Get("X-Request-ID")))
			writeJSON(w, err.Code, dtos.Response[any]{
				Message:   "Error occur",
				RequestID: r.Header.Get("X-Request-ID"),
				Errors: &dtos.ErrorResponse{
					Code:    err.Code,
					Field:   err.Field,
					Message: err.Message,
				},
			})
		}
	}
}

func WriteData(w http.ResponseWriter, status int, body any) {
	writeJSON(w, status, body)
}

func CreateResponse[T any](message string, data T, requestId string) dtos.Response[T] {
	return dtos.Response[T]{
		Message:   message,
		Data:      data,
		RequestID: requestId,
	}
}
