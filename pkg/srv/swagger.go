/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

// SwaggerJSON describes the API routes configured in configureRouter
const SwaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "go-xhci API",
    "description": "Decode xHCI context data structures",
    "version": "1.0.0"
  },
  "basePath": "/api",
  "schemes": ["http"],
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/structs": {
      "get": {
        "summary": "List supported structures",
        "operationId": "getStructs",
        "responses": {
          "200": {"description": "Supported structures", "schema": {"type": "array", "items": {"$ref": "#/definitions/kindInfo"}}}
        }
      }
    },
    "/decode/{code}": {
      "post": {
        "summary": "Decode data as a structure",
        "operationId": "decode",
        "parameters": [
          {"name": "code", "in": "path", "required": true, "type": "string", "enum": ["slotctx", "endpctx", "icctx", "devctx", "ipctx"]},
          {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/decodeRequest"}}
        ],
        "responses": {
          "200": {"description": "Decoded structure", "schema": {"$ref": "#/definitions/result"}},
          "400": {"$ref": "#/responses/badReq"},
          "404": {"$ref": "#/responses/notFound"}
        }
      }
    },
    "/history": {
      "get": {
        "summary": "List saved snapshots",
        "operationId": "getHistory",
        "responses": {
          "200": {"description": "Snapshots", "schema": {"type": "array", "items": {"$ref": "#/definitions/snapshot"}}},
          "500": {"$ref": "#/responses/internalError"}
        }
      }
    },
    "/history/{name}": {
      "parameters": [
        {"name": "name", "in": "path", "required": true, "type": "string"}
      ],
      "get": {
        "summary": "Decode a saved snapshot",
        "operationId": "getSnapshot",
        "responses": {
          "200": {"description": "Snapshot and its decoded structure", "schema": {"$ref": "#/definitions/snapshotResult"}},
          "404": {"$ref": "#/responses/notFound"}
        }
      },
      "delete": {
        "summary": "Delete a saved snapshot",
        "operationId": "deleteSnapshot",
        "responses": {
          "200": {"$ref": "#/responses/okResp"},
          "404": {"$ref": "#/responses/notFound"}
        }
      }
    }
  },
  "responses": {
    "okResp": {"description": "OK", "schema": {"$ref": "#/definitions/status"}},
    "badReq": {"description": "Bad request", "schema": {"$ref": "#/definitions/status"}},
    "notFound": {"description": "Not found", "schema": {"$ref": "#/definitions/status"}},
    "internalError": {"description": "Internal error", "schema": {"$ref": "#/definitions/status"}}
  },
  "definitions": {
    "status": {
      "type": "object",
      "properties": {
        "code": {"type": "integer"},
        "error": {"type": "string"}
      }
    },
    "kindInfo": {
      "type": "object",
      "properties": {
        "code": {"type": "string"},
        "description": {"type": "string"},
        "minSize": {"type": "integer"},
        "size": {"type": "integer"}
      }
    },
    "decodeRequest": {
      "type": "object",
      "required": ["data"],
      "properties": {
        "data": {"type": "string", "description": "hex tokens separated by spaces or commas"},
        "word": {"type": "boolean", "description": "tokens are little-endian 32-bit words"},
        "save": {"type": "string", "description": "save the data as a snapshot with this name"},
        "head": {"type": "string", "description": "title of the first structure"},
        "endpointIndex": {"type": "integer", "minimum": 0, "maximum": 30, "description": "Device Context position of a standalone Endpoint Context"}
      }
    },
    "field": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "bitWidth": {"type": "integer"},
        "byteRange": {"type": "object", "properties": {"first": {"type": "integer"}, "last": {"type": "integer"}}},
        "raw": {"type": "integer"},
        "text": {"type": "string"},
        "reserved": {"type": "boolean"}
      }
    },
    "gridRow": {
      "type": "object",
      "properties": {
        "offset": {"type": "string"},
        "word": {"type": "integer"},
        "bits": {"type": "array", "items": {"type": "integer"}},
        "cells": {"type": "array", "items": {"type": "object", "properties": {"label": {"type": "string"}, "width": {"type": "integer"}}}}
      }
    },
    "structure": {
      "type": "object",
      "properties": {
        "title": {"type": "string"},
        "kind": {"type": "string"},
        "fields": {"type": "array", "items": {"$ref": "#/definitions/field"}},
        "grid": {"type": "array", "items": {"$ref": "#/definitions/gridRow"}}
      }
    },
    "result": {
      "type": "object",
      "properties": {
        "kind": {"type": "string"},
        "members": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "name": {"type": "string"},
              "structure": {"$ref": "#/definitions/structure"}
            }
          }
        }
      }
    },
    "snapshot": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "kind": {"type": "string"},
        "data": {"type": "string", "format": "byte"},
        "head": {"type": "string"},
        "endpointIndex": {"type": "integer"},
        "created": {"type": "string", "format": "date-time"}
      }
    },
    "snapshotResult": {
      "type": "object",
      "properties": {
        "snapshot": {"$ref": "#/definitions/snapshot"},
        "result": {"$ref": "#/definitions/result"}
      }
    }
  }
}`
