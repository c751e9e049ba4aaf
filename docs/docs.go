// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/prices/refresh": {
            "post": {
                "description": "Perturbs every priced holding by up to 1% and revalues all portfolios",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Run price simulation now",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PriceRefreshResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolios": {
            "get": {
                "description": "List every portfolio owned by the caller, holdings included",
                "produces": ["application/json"],
                "tags": ["portfolios"],
                "summary": "List portfolios",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Portfolio"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["portfolios"],
                "summary": "Create portfolio",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true},
                    {"description": "Portfolio name", "name": "portfolio", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PortfolioRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Portfolio"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolios/holdings/{holdingId}": {
            "delete": {
                "description": "Delete a holding; its portfolio total is recomputed",
                "tags": ["holdings"],
                "summary": "Remove holding",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "Holding ID", "name": "holdingId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolios/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolios"],
                "summary": "Get portfolio",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "Portfolio ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Portfolio"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["portfolios"],
                "summary": "Rename portfolio",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "Portfolio ID", "name": "id", "in": "path", "required": true},
                    {"description": "New name", "name": "portfolio", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PortfolioRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Portfolio"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["portfolios"],
                "summary": "Delete portfolio and its holdings",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "Portfolio ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolios/{portfolioId}/holdings": {
            "post": {
                "description": "Attach a holding to a portfolio; the portfolio total is recomputed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["holdings"],
                "summary": "Add holding",
                "parameters": [
                    {"type": "string", "description": "Acting owner", "name": "X-Owner-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "Portfolio ID", "name": "portfolioId", "in": "path", "required": true},
                    {"description": "Holding", "name": "holding", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.HoldingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Holding"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "handlers.HoldingRequest": {
            "type": "object",
            "properties": {
                "average_price": {"type": "string"},
                "last_price": {"type": "string"},
                "quantity": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "handlers.PortfolioRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            }
        },
        "models.Holding": {
            "type": "object",
            "properties": {
                "average_price": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "last_price": {"type": "string"},
                "portfolio_id": {"type": "integer"},
                "quantity": {"type": "string"},
                "symbol": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Portfolio": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "holdings": {"type": "array", "items": {"$ref": "#/definitions/models.Holding"}},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "owner_id": {"type": "string"},
                "total_value": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.PriceRefreshResult": {
            "type": "object",
            "properties": {
                "duration": {"type": "integer"},
                "holdings_skipped": {"type": "integer"},
                "holdings_updated": {"type": "integer"},
                "portfolios_failed": {"type": "integer"},
                "portfolios_revalued": {"type": "integer"},
                "started_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Folio API",
	Description:      "Owner-scoped portfolios with continuously revalued totals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
