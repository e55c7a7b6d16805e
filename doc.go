// Package registrykit provides a generic, access-controlled registry of
// named, owned entities.
//
// A registry holds four kinds of state: entities with free-form attributes,
// global configuration entries, one coarse-grained role per address, and the
// counters that tie them together. Every state change is checked against the
// caller's role or ownership, committed atomically, and reported as an event.
//
// # Core Concepts
//
// Address: an opaque, externally authenticated principal. The registry only
// compares addresses for equality.
//
// Role: one of none < viewer < manager < admin. A higher role passes every
// check a lower role passes. Addresses that were never assigned a role hold
// RoleNone.
//
// Entity: a record with an ID assigned in creation order (1, 2, 3, ...), a
// name, an owner, creation and update timestamps, and an active flag.
// Owners may update their entities and transfer them even without a role.
//
// Symbol: a short [A-Za-z0-9_] identifier naming attributes and
// configuration entries.
//
// # Permissions
//
//	Initialize                     anyone, once
//	SetConfig, SetRole             admin
//	CreateEntity                   manager
//	UpdateEntity, SetAttribute     manager or owner
//	TransferOwnership              admin or owner
//	Get*, ListEntities             anyone
//
// # Basic Usage
//
//	// 1. Create the service over a store
//	svc := registrykit.NewService(registrykit.NewMemoryStore(),
//	    registrykit.WithEmitter(registrykit.NewLogEmitter(logger)),
//	)
//
//	// 2. Bootstrap the first admin
//	svc.Initialize(ctx, "alice")
//
//	// 3. Grant roles and create entities
//	svc.SetRole(ctx, "alice", "bob", registrykit.RoleManager)
//	id, _ := svc.CreateEntity(ctx, "bob", "Widget", "carol")
//
//	// 4. Owners manage their own entities
//	svc.SetAttribute(ctx, "carol", id, "color", "red")
//
// # Stores
//
// MemoryStore keeps everything in process. BunStore persists the registry in
// SQL through bun: OpenSQLite for an embedded database, OpenPostgres for a
// dbkit-managed PostgreSQL database with migrations. Open builds a complete
// Service from environment configuration.
//
// # Events and Audit Log
//
// Every mutation emits its events after the store commits, in order:
// contract/init, config/<key>, role/set, attribute/set, ownership/transfer,
// and a transaction/<action> record for every entity change. AuditStore
// persists them to the registry_audit_log table together with request
// metadata (IP, user agent, request ID) and answers filtered queries.
//
// # Middleware Usage
//
//	mw := registrykit.NewMiddleware(svc)
//
//	mux.Handle("POST /entities", mw.RequireRole(registrykit.RoleManager)(createHandler))
//	mux.Handle("PUT /entities/{id}",
//	    mw.RequireEntityAccess(registrykit.RoleManager, registrykit.EntityFromParam("id"))(updateHandler))
package registrykit
