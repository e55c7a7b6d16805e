package registrykit

import (
	"strconv"
	"strings"
)

// Namespace names one of the disjoint key spaces of the registry.
type Namespace string

const (
	NamespaceAdmin        Namespace = "admin"
	NamespaceNextEntityID Namespace = "next_entity_id"
	NamespaceEntity       Namespace = "entity"
	NamespaceEntityList   Namespace = "entity_list"
	NamespaceRole         Namespace = "role"
	NamespaceAttribute    Namespace = "attribute"
	NamespaceConfig       Namespace = "config"
)

// Key addresses one logical record in the store.
//
// The set of keys is closed: only the constructors in this file produce
// values that satisfy the interface. Two different logical keys never encode
// to the same string.
type Key interface {
	// Namespace returns the key space this key belongs to.
	Namespace() Namespace
	// Encode returns the stored form of the key.
	Encode() string

	isKey()
}

type adminKey struct{}

type nextEntityIDKey struct{}

type entityKey struct{ id uint32 }

type entityListKey struct{}

type roleKey struct{ address Address }

type attributeKey struct {
	entityID uint32
	key      Symbol
}

type configKey struct{ key Symbol }

// AdminKey addresses the admin marker written by Initialize.
func AdminKey() Key { return adminKey{} }

// NextEntityIDKey addresses the next-id counter.
func NextEntityIDKey() Key { return nextEntityIDKey{} }

// EntityKey addresses the entity with the given ID.
func EntityKey(id uint32) Key { return entityKey{id: id} }

// EntityListKey addresses the creation-ordered entity index.
func EntityListKey() Key { return entityListKey{} }

// RoleKey addresses the role record of an address.
func RoleKey(address Address) Key { return roleKey{address: address} }

// AttributeKey addresses one attribute of an entity.
func AttributeKey(entityID uint32, key Symbol) Key {
	return attributeKey{entityID: entityID, key: key}
}

// ConfigKey addresses a global configuration entry.
func ConfigKey(key Symbol) Key { return configKey{key: key} }

func (adminKey) Namespace() Namespace        { return NamespaceAdmin }
func (nextEntityIDKey) Namespace() Namespace { return NamespaceNextEntityID }
func (entityKey) Namespace() Namespace       { return NamespaceEntity }
func (entityListKey) Namespace() Namespace   { return NamespaceEntityList }
func (roleKey) Namespace() Namespace         { return NamespaceRole }
func (attributeKey) Namespace() Namespace    { return NamespaceAttribute }
func (configKey) Namespace() Namespace       { return NamespaceConfig }

func (k adminKey) Encode() string        { return encodeKey(k.Namespace()) }
func (k nextEntityIDKey) Encode() string { return encodeKey(k.Namespace()) }
func (k entityListKey) Encode() string   { return encodeKey(k.Namespace()) }

func (k entityKey) Encode() string {
	return encodeKey(k.Namespace(), strconv.FormatUint(uint64(k.id), 10))
}

func (k roleKey) Encode() string {
	return encodeKey(k.Namespace(), string(k.address))
}

func (k attributeKey) Encode() string {
	return encodeKey(k.Namespace(), strconv.FormatUint(uint64(k.entityID), 10), string(k.key))
}

func (k configKey) Encode() string {
	return encodeKey(k.Namespace(), string(k.key))
}

func (adminKey) isKey()        {}
func (nextEntityIDKey) isKey() {}
func (entityKey) isKey()       {}
func (entityListKey) isKey()   {}
func (roleKey) isKey()         {}
func (attributeKey) isKey()    {}
func (configKey) isKey()       {}

// encodeKey joins the namespace with length-prefixed payload fields, so a
// payload containing the separator can never be mistaken for a field boundary.
func encodeKey(ns Namespace, fields ...string) string {
	var b strings.Builder
	b.WriteString(string(ns))
	for _, f := range fields {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}
