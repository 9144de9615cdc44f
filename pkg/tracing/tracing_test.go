package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestGinMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/quizzes/:id", func(c *gin.Context) {
		_, span := StartSpan(c.Request.Context(), "inner")
		span.End()
		c.Status(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/quizzes/1", nil))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	inner, server := spans[0], spans[1]
	if server.Name() != "GET /api/quizzes/:id" {
		t.Errorf("server span name = %q", server.Name())
	}
	if server.Status().Code != codes.Error {
		t.Errorf("server span status = %v", server.Status())
	}
	if inner.Parent().SpanID() != server.SpanContext().SpanID() {
		t.Error("service span is not a child of the request span")
	}
}
