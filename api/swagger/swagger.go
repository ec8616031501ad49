package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Property Report API",
        "description": "Weekly and monthly property portfolio reporting pipeline",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Reports", "description": "Report submission and retrieval"},
        {"name": "Dashboard", "description": "Headline rollup"},
        {"name": "Directory", "description": "Static portfolio and team lookups"},
        {"name": "Periods", "description": "Reporting period helpers"}
    ],
    "paths": {
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Submit a weekly or monthly report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SubmitReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "get": {
                "tags": ["Reports"],
                "summary": "List all reports, newest period first",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/reports/previous-goals": {
            "get": {
                "tags": ["Reports"],
                "summary": "Latest submitted goal pair",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Fetch one report with all child collections",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/reports/{id}/document": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the rendered report document",
                "produces": ["application/pdf"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF file"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/reports/{id}/narrative": {
            "post": {
                "tags": ["Reports"],
                "summary": "Regenerate the narrative for an existing report",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Report count, latest report, current-month spend",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/directory/properties": {
            "get": {
                "tags": ["Directory"],
                "summary": "Managed properties grouped by portfolio",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/directory/team": {
            "get": {
                "tags": ["Directory"],
                "summary": "Staff members who may submit reports",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/periods/current": {
            "get": {
                "tags": ["Periods"],
                "summary": "Upcoming period end and month-end flag",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitReportRequest": {
            "type": "object",
            "required": ["week_ending", "submitted_by"],
            "properties": {
                "week_ending": {"type": "string", "example": "2025-03-28"},
                "submitted_by": {"type": "string"},
                "is_monthly": {"type": "boolean"},
                "status_52": {"type": "string", "enum": ["green", "amber", "red"]},
                "status_ffr": {"type": "string", "enum": ["green", "amber", "red"]},
                "status_cash": {"type": "string", "enum": ["green", "amber", "red"]},
                "primary_goal": {"type": "string"},
                "secondary_goal": {"type": "string"},
                "costs": {"type": "array", "items": {"type": "object"}},
                "occupancy": {"type": "array", "items": {"type": "object"}},
                "issues": {"type": "array", "items": {"type": "object"}},
                "arrears": {"type": "array", "items": {"type": "object"}},
                "income": {"type": "array", "items": {"type": "object"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
