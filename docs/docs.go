// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init` after changing handler annotations.
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
        "/health": {
            "get": {
                "description": "Liveness plus the trading calendar cached for the most recent target date",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.HealthStatus"}
                    }
                }
            }
        },
        "/top50": {
            "get": {
                "description": "Ranks listed and OTC securities by turnover on a trading date, with close-price drift against 1, 5, 10, 20, 60, 120 and 240 trading days earlier. Without a date the most recent trading date with data is used.",
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "Turnover ranking with price drift",
                "parameters": [
                    {"type": "string", "description": "Trading date (YYYYMMDD)", "name": "date", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Number of rows", "name": "top_n", "in": "query"},
                    {"type": "string", "default": "all", "description": "all, listed or otc", "name": "market", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RankingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.AggregatedRecord": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "turnover": {"type": "number"},
                "close": {"type": "number"},
                "market": {"type": "string", "enum": ["listed", "otc"]},
                "drift_1d": {"type": "number"},
                "drift_5d": {"type": "number"},
                "drift_10d": {"type": "number"},
                "drift_20d": {"type": "number"},
                "drift_60d": {"type": "number"},
                "drift_120d": {"type": "number"},
                "drift_240d": {"type": "number"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "cache_loaded": {"type": "boolean"},
                "cached_date": {"type": "string"}
            }
        },
        "models.RankingResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "date": {"type": "string"},
                "auto_detected": {"type": "boolean"},
                "count": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.AggregatedRecord"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Taiwan Turnover Ranking API",
	Description:      "Top securities by turnover on TWSE and TPEx with multi-horizon close-price drift.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
