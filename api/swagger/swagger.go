package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Room Allocation API",
        "description": "Classroom and room allocation service with conflict detection, pre-emptive reservations and occupancy reporting",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Rooms", "description": "Room catalog, search and reservation"},
        {"name": "Classes", "description": "Class scheduling and room assignment"},
        {"name": "Dashboard", "description": "Per-period occupancy overview"},
        {"name": "Reports", "description": "Asynchronous CSV/PDF exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}": {
            "patch": {
                "tags": ["Rooms"],
                "summary": "Partially update room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Room not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/search": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Search rooms grouped by derived status",
                "parameters": [
                    {"name": "roomType", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["AVAILABLE", "OCCUPIED", "RESERVED", "BLOCKED"]},
                    {"name": "minCapacity", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/reserve": {
            "post": {
                "tags": ["Rooms"],
                "summary": "Reserve a room, displacing the current occupant when possible",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Reserved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class or room not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Occupant cannot be relocated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class and allocate a room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassroomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Requested room not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No eligible room", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Partially update class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassroomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class or room not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Room unavailable for the new criteria", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/release": {
            "post": {
                "tags": ["Classes"],
                "summary": "Record a day release for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReleaseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Per-period occupancy overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Enqueue an allocation or room export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid report request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/download/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a rendered report via signed token",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "404": {"description": "Unknown or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Room": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "roomType": {"type": "string"},
                "capacity": {"type": "integer"},
                "status": {"type": "string", "enum": ["AVAILABLE", "OCCUPIED", "RESERVED", "BLOCKED"]},
                "blockedDates": {"type": "array", "items": {"type": "string", "format": "date"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "ClassSchedule": {
            "type": "object",
            "properties": {
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "daysOfWeek": {"type": "array", "items": {"type": "string"}},
                "period": {"type": "string", "enum": ["MORNING", "AFTERNOON", "EVENING"]}
            }
        },
        "Classroom": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "schedule": {"$ref": "#/definitions/ClassSchedule"},
                "studentCount": {"type": "integer"},
                "roomId": {"type": "string"},
                "releases": {"type": "array", "items": {"type": "object"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "roomType": {"type": "string"},
                "capacity": {"type": "integer"},
                "status": {"type": "string"},
                "blockedDates": {"type": "array", "items": {"type": "string", "format": "date"}}
            },
            "required": ["name", "roomType", "capacity"]
        },
        "UpdateRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "roomType": {"type": "string"},
                "capacity": {"type": "integer"},
                "status": {"type": "string"},
                "blockedDates": {"type": "array", "items": {"type": "string", "format": "date"}}
            }
        },
        "CreateClassroomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "schedule": {"$ref": "#/definitions/ClassSchedule"},
                "studentCount": {"type": "integer"},
                "roomId": {"type": "string"}
            },
            "required": ["name", "schedule", "studentCount"]
        },
        "UpdateClassroomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "schedule": {"$ref": "#/definitions/ClassSchedule"},
                "studentCount": {"type": "integer"},
                "roomId": {"type": "string"}
            }
        },
        "ReleaseRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "period": {"type": "string", "enum": ["MORNING", "AFTERNOON", "EVENING"]},
                "reason": {"type": "string"}
            },
            "required": ["date", "period"]
        },
        "ReservationRequest": {
            "type": "object",
            "properties": {
                "requestingClassId": {"type": "string"},
                "desiredRoomId": {"type": "string"}
            },
            "required": ["requestingClassId", "desiredRoomId"]
        },
        "ReservationResponse": {
            "type": "object",
            "properties": {
                "requestingClassId": {"type": "string"},
                "displacedClassId": {"type": "string"},
                "newRoomForRequesting": {"type": "string"},
                "newRoomForDisplaced": {"type": "string"},
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ReportRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["allocations", "rooms"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "roomType": {"type": "string"},
                "period": {"type": "string", "enum": ["MORNING", "AFTERNOON", "EVENING"]}
            },
            "required": ["type", "format"]
        },
        "ReportStatus": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string", "enum": ["QUEUED", "PROCESSING", "FINISHED", "FAILED"]},
                "progress": {"type": "integer"},
                "resultUrl": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "PeriodOccupancy": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "occupied": {"type": "integer"},
                "available": {"type": "integer"}
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
