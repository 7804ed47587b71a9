// Package docs registers the generated Swagger specification.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@greasemeter.live"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Open a map session",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Close a map session",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/viewport/markers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Viewport"],
                "summary": "Refresh the viewport and get markers",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "query", "required": true},
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lng", "in": "query", "required": true},
                    {"type": "number", "name": "lat_delta", "in": "query", "required": true},
                    {"type": "number", "name": "lng_delta", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/search/suggest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Debounced place search",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "query", "required": true},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "number", "name": "lat", "in": "query"},
                    {"type": "number", "name": "lng", "in": "query"},
                    {"type": "number", "name": "lat_delta", "in": "query"},
                    {"type": "number", "name": "lng_delta", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/places/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Get enriched place detail",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/places/{id}/resolve": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Resolve a place's coordinates",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "number", "name": "lat", "in": "query"},
                    {"type": "number", "name": "lng", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/places/{id}/reviews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "List reviews for a place",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Bad Gateway"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Post a review",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/places/{id}/bookmarks": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Bookmarks"],
                "summary": "Bookmark a place",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/places/recommend": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Bookmarks"],
                "summary": "Recommend a place",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/my/bookmarks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Bookmarks"],
                "summary": "List the caller's bookmarks",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/my/bookmarks/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Bookmarks"],
                "summary": "Delete a bookmark",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Place Index Service API",
	Description:      "Gateway service in front of the places backend: per-session viewport place index with grid decluttering, debounced sequence-guarded search, and background metadata enrichment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
