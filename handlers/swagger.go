package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers Swagger/OpenAPI endpoints for the document generator.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>crm documents - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI description of the document generator routes.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "crm-document-generator", "version": "v0.1.0" },
  "paths": {
    "/document-generator": {
      "get": { "summary": "Document generator form", "responses": { "200": { "description": "HTML form" } } },
      "post": {
        "summary": "Generate and download a PDF",
        "requestBody": { "content": { "application/x-www-form-urlencoded": { "schema": {"type":"object","required":["name","content"],"properties":{"name":{"type":"string","maxLength":255},"content":{"type":"string"}}}}}},
        "responses": {
          "200": { "description": "PDF attachment (application/pdf), or the success page when generation failed" },
          "302": { "description": "validation failed, redirect to the form" },
          "429": { "description": "rate limit exceeded" }
        }
      }
    },
    "/api/documents": {
      "get": { "summary": "List generated documents", "responses": { "200": { "description": "id, name and createdAt per document" } } }
    },
    "/api/documents/{id}": {
      "get": { "summary": "Get a stored document request", "responses": { "200": { "description": "document" }, "404": { "description": "not found" } } }
    },
    "/api/documents/{id}/download": {
      "get": { "summary": "Render a stored document again", "responses": { "200": { "description": "PDF attachment" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
