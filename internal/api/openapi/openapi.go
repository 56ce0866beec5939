// Пакет openapi — встроенный OpenAPI контракт Admin Module и
// middleware валидации входящих запросов по контракту.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	apierrors "github.com/main-salman/haqnow/admin-module/internal/api/errors"
)

//go:embed openapi.yaml
var specYAML []byte

// Load загружает и валидирует встроенный OpenAPI контракт.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("загрузка OpenAPI контракта: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("валидация OpenAPI контракта: %w", err)
	}

	return doc, nil
}

// ValidationMiddleware возвращает middleware, проверяющий входящие
// запросы по OpenAPI контракту: путь, параметры, тело. Запросы вне
// контракта и health/metrics пропускаются без проверки.
// Аутентификацию проверяет JWT middleware, здесь она отключена.
func ValidationMiddleware(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("создание OpenAPI роутера: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/health/") || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if err == routers.ErrPathNotFound || err == routers.ErrMethodNotAllowed {
					// Неизвестные пути отдаём дальше: chi вернёт 404/405
					next.ServeHTTP(w, r)
					return
				}
				apierrors.InternalError(w, "ошибка маршрутизации OpenAPI")
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				apierrors.ValidationError(w, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	return mw, nil
}
