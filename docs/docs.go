package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "TaskList API: todos, vocabularies, list preferences and theme",
        "title": "TaskList API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/todos": {
            "get": {
                "tags": [
                    "Todos"
                ],
                "summary": "List visible todos",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search term, overrides the stored search",
                        "name": "search",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Todos",
                        "schema": {
                            "$ref": "#/definitions/ports.TodoList"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Create a todo",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Todo",
                        "name": "todo",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateTodoRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/todos/query": {
            "get": {
                "tags": [
                    "Todos"
                ],
                "summary": "List visible todos with stored filters and sort applied",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Todos",
                        "schema": {
                            "$ref": "#/definitions/ports.TodoList"
                        }
                    }
                }
            }
        },
        "/todos/{id}": {
            "get": {
                "tags": [
                    "Todos"
                ],
                "summary": "Get a todo",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Todos"
                ],
                "summary": "Replace a todo",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Todo",
                        "name": "todo",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateTodoRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Todos"
                ],
                "summary": "Delete a todo",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted or absent"
                    }
                }
            }
        },
        "/todos/{id}/toggle": {
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Advance the todo status",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    }
                }
            }
        },
        "/todos/{id}/subtasks": {
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Add a subtask",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Subtask",
                        "name": "subtask",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddSubtaskRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/todos/{id}/subtasks/{subtaskId}/toggle": {
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Toggle a subtask",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Subtask ID",
                        "name": "subtaskId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    }
                }
            }
        },
        "/todos/{id}/comments": {
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Add a comment",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Comment",
                        "name": "comment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddCommentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/todos/{id}/assign": {
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Assign a user",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Assignment",
                        "name": "assignment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AssignRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/todos/{id}/assign/{userId}": {
            "delete": {
                "tags": [
                    "Todos"
                ],
                "summary": "Unassign a user",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    }
                }
            }
        },
        "/todos/{id}/reminder": {
            "put": {
                "tags": [
                    "Todos"
                ],
                "summary": "Set the reminder",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Todo ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Reminder",
                        "name": "reminder",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.ReminderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated todo",
                        "schema": {
                            "$ref": "#/definitions/entities.Todo"
                        }
                    },
                    "204": {
                        "description": "Todo not found, nothing changed"
                    }
                }
            }
        },
        "/categories": {
            "get": {
                "tags": [
                    "Vocabulary"
                ],
                "summary": "List categories",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Vocabulary",
                        "schema": {
                            "$ref": "#/definitions/ports.StringList"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Vocabulary"
                ],
                "summary": "Add a category",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.VocabularyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Vocabulary",
                        "schema": {
                            "$ref": "#/definitions/ports.StringList"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/labels": {
            "get": {
                "tags": [
                    "Vocabulary"
                ],
                "summary": "List labels",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Vocabulary",
                        "schema": {
                            "$ref": "#/definitions/ports.StringList"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Vocabulary"
                ],
                "summary": "Add a label",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Label",
                        "name": "label",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.VocabularyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Vocabulary",
                        "schema": {
                            "$ref": "#/definitions/ports.StringList"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/preferences/filters": {
            "get": {
                "tags": [
                    "Preferences"
                ],
                "summary": "Get filters",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Filters",
                        "schema": {
                            "$ref": "#/definitions/entities.Filters"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Preferences"
                ],
                "summary": "Merge filters, lists missing from the body are kept",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Filter lists to replace",
                        "name": "filters",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/entities.Filters"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Filters",
                        "schema": {
                            "$ref": "#/definitions/entities.Filters"
                        }
                    }
                }
            }
        },
        "/preferences/sort": {
            "get": {
                "tags": [
                    "Preferences"
                ],
                "summary": "Get sort",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sort",
                        "schema": {
                            "$ref": "#/definitions/entities.Sort"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Preferences"
                ],
                "summary": "Replace sort",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Sort",
                        "name": "sort",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.SortRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Sort",
                        "schema": {
                            "$ref": "#/definitions/entities.Sort"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/preferences/search": {
            "get": {
                "tags": [
                    "Preferences"
                ],
                "summary": "Get search",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Search",
                        "schema": {
                            "$ref": "#/definitions/ports.SearchRequest"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Preferences"
                ],
                "summary": "Replace search",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Search",
                        "name": "search",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.SearchRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Search",
                        "schema": {
                            "$ref": "#/definitions/ports.SearchRequest"
                        }
                    }
                }
            }
        },
        "/theme": {
            "get": {
                "tags": [
                    "Theme"
                ],
                "summary": "Get theme",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Theme",
                        "schema": {
                            "$ref": "#/definitions/ports.ThemeResponse"
                        }
                    }
                }
            }
        },
        "/theme/toggle": {
            "post": {
                "tags": [
                    "Theme"
                ],
                "summary": "Toggle dark mode",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Theme",
                        "schema": {
                            "$ref": "#/definitions/ports.ThemeResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "entities.Subtask": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                }
            }
        },
        "entities.Comment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "entities.Todo": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "dueDate": {
                    "type": "string"
                },
                "dueTime": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "in-progress",
                        "completed"
                    ]
                },
                "category": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "assignedTo": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "labels": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "subtasks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Subtask"
                    }
                },
                "comments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Comment"
                    }
                },
                "reminder": {
                    "type": "string"
                },
                "recurring": {
                    "type": "string",
                    "enum": [
                        "none",
                        "daily",
                        "weekly",
                        "monthly"
                    ]
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "entities.Filters": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "priority": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "category": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "labels": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "assignedTo": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "entities.Sort": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string",
                    "enum": [
                        "createdAt",
                        "dueDate",
                        "priority",
                        "status",
                        "title"
                    ]
                },
                "direction": {
                    "type": "string",
                    "enum": [
                        "asc",
                        "desc"
                    ]
                }
            }
        },
        "ports.CreateTodoRequest": {
            "type": "object",
            "required": [
                "title"
            ],
            "properties": {
                "title": {
                    "type": "string",
                    "example": "Buy milk"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "dueDate": {
                    "type": "string"
                },
                "dueTime": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "labels": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "subtasks": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "assignedTo": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "reminder": {
                    "type": "boolean"
                },
                "recurring": {
                    "type": "string",
                    "enum": [
                        "none",
                        "daily",
                        "weekly",
                        "monthly"
                    ]
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "ports.UpdateTodoRequest": {
            "type": "object",
            "required": [
                "title",
                "priority",
                "status"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "dueDate": {
                    "type": "string"
                },
                "dueTime": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "in-progress",
                        "completed"
                    ]
                },
                "category": {
                    "type": "string"
                },
                "labels": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "assignedTo": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "subtasks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Subtask"
                    }
                },
                "reminder": {
                    "type": "string"
                },
                "recurring": {
                    "type": "string",
                    "enum": [
                        "none",
                        "daily",
                        "weekly",
                        "monthly"
                    ]
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "ports.AddSubtaskRequest": {
            "type": "object",
            "required": [
                "title"
            ],
            "properties": {
                "title": {
                    "type": "string"
                }
            }
        },
        "ports.AddCommentRequest": {
            "type": "object",
            "required": [
                "text"
            ],
            "properties": {
                "text": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                }
            }
        },
        "ports.AssignRequest": {
            "type": "object",
            "properties": {
                "userId": {
                    "type": "string"
                }
            }
        },
        "ports.ReminderRequest": {
            "type": "object",
            "properties": {
                "reminder": {
                    "type": "string"
                }
            }
        },
        "ports.VocabularyRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string"
                }
            }
        },
        "ports.SearchRequest": {
            "type": "object",
            "properties": {
                "search": {
                    "type": "string"
                }
            }
        },
        "ports.SortRequest": {
            "type": "object",
            "required": [
                "field",
                "direction"
            ],
            "properties": {
                "field": {
                    "type": "string"
                },
                "direction": {
                    "type": "string",
                    "enum": [
                        "asc",
                        "desc"
                    ]
                }
            }
        },
        "ports.ThemeResponse": {
            "type": "object",
            "properties": {
                "darkMode": {
                    "type": "boolean"
                },
                "class": {
                    "type": "string",
                    "enum": [
                        "light",
                        "dark"
                    ]
                }
            }
        },
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                }
            }
        },
        "ports.TodoList": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entities.Todo"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "ports.StringList": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskList API",
	Description:      "TaskList API: todos, vocabularies, list preferences and theme",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
