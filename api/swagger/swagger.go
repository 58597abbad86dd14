package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance Insights API",
        "description": "Attendance analytics engine: snapshots, series, patterns, streaks and session state",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Analytics", "description": "Snapshot, series, pattern and streak computation"},
        {"name": "Sessions", "description": "Cross-filter and drill-down session state"},
        {"name": "Exports", "description": "CSV/PDF export rendering"},
        {"name": "System", "description": "Health and runtime metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/api/v1/analytics/snapshot": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Aggregate attendance snapshot",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string", "enum": ["student", "instructor"]},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "riskLevel", "in": "query", "type": "string"},
                    {"name": "preset", "in": "query", "type": "string", "enum": ["today", "week", "month", "quarter", "year", "custom"]},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/series": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Time-bucketed attendance series",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"},
                    {"name": "metric", "in": "query", "type": "string", "enum": ["attendanceRate", "lateRate"]},
                    {"name": "preset", "in": "query", "type": "string"},
                    {"name": "comparison", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/patterns": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Series annotated with moving averages, peaks and valleys",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/streaks": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Series annotated with streak runs and stats",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"},
                    {"name": "threshold", "in": "query", "type": "number"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/departments": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Distinct department names for a record type",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/cache": {
            "delete": {
                "tags": ["Analytics"],
                "summary": "Drop all memoized analytics snapshots",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a new analytics session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Current session state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found or expired"}
                }
            }
        },
        "/api/v1/sessions/{id}/filters": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Merge chart-driven cross filters",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyFiltersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}/filter-changes": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Record a named selector action",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeFilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}/filters/{key}": {
            "delete": {
                "tags": ["Sessions"],
                "summary": "Remove one active filter",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}/reset": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Reset the session to its initial state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}/drilldown": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Descend one drill-down level",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DrillDownRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}/navigate": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Move through the breadcrumb trail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NavigateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/snapshot": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the snapshot department breakdown",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "422": {"description": "No records matched"}
                }
            }
        },
        "/api/v1/exports/series": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the generated time series",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "422": {"description": "No records matched"}
                }
            }
        },
        "/api/v1/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated runtime metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "AnalyticsSnapshot": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "totalCount": {"type": "integer"},
                "attendedTotal": {"type": "integer"},
                "absentTotal": {"type": "integer"},
                "lateTotal": {"type": "integer"},
                "classesTotal": {"type": "integer"},
                "attendanceRate": {"type": "number"},
                "lateRate": {"type": "number"},
                "departments": {"type": "object"},
                "riskLevels": {"type": "array", "items": {"$ref": "#/definitions/RiskBucket"}},
                "trends": {"type": "object"}
            }
        },
        "RiskBucket": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "count": {"type": "integer"},
                "color": {"type": "string"}
            }
        },
        "SeriesPoint": {
            "type": "object",
            "properties": {
                "bucketKind": {"type": "string"},
                "bucketValue": {"type": "string"},
                "label": {"type": "string"},
                "metric": {"type": "string"},
                "value": {"type": "number"},
                "previous": {"type": "number"}
            }
        },
        "ApplyFiltersRequest": {
            "type": "object",
            "properties": {
                "filters": {"type": "object", "additionalProperties": {"type": "string"}}
            },
            "required": ["filters"]
        },
        "ChangeFilterRequest": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"},
                "source": {"type": "string"}
            },
            "required": ["key", "source"]
        },
        "DrillDownRequest": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "data": {"type": "object", "additionalProperties": {"type": "string"}}
            },
            "required": ["level"]
        },
        "NavigateRequest": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"}
            },
            "required": ["index"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
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
