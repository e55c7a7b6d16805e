package registrykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEncode(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		ns   Namespace
		want string
	}{
		{"admin", AdminKey(), NamespaceAdmin, "admin"},
		{"next entity id", NextEntityIDKey(), NamespaceNextEntityID, "next_entity_id"},
		{"entity", EntityKey(3), NamespaceEntity, "entity/1:3"},
		{"entity list", EntityListKey(), NamespaceEntityList, "entity_list"},
		{"role", RoleKey("alice"), NamespaceRole, "role/5:alice"},
		{"attribute", AttributeKey(3, "color"), NamespaceAttribute, "attribute/1:3/5:color"},
		{"config", ConfigKey("fee"), NamespaceConfig, "config/3:fee"},
		{"large entity id", EntityKey(4294967295), NamespaceEntity, "entity/10:4294967295"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Encode())
			assert.Equal(t, tt.ns, tt.key.Namespace())
		})
	}
}

func TestKeyEncodeIsInjective(t *testing.T) {
	keys := []Key{
		AdminKey(),
		NextEntityIDKey(),
		EntityListKey(),
		EntityKey(1),
		EntityKey(12),
		EntityKey(3),
		AttributeKey(3, "color"),
		AttributeKey(31, "color"),
		AttributeKey(1, "2_color"),
		RoleKey("a"),
		RoleKey("a/1:b"),
		RoleKey("entity/1:3"),
		RoleKey(""),
		ConfigKey("color"),
		ConfigKey("colo"),
	}

	seen := make(map[string]Key)
	for _, k := range keys {
		enc := k.Encode()
		if prev, ok := seen[enc]; ok {
			t.Fatalf("keys %#v and %#v both encode to %q", prev, k, enc)
		}
		seen[enc] = k
	}
}

func TestKeyEquality(t *testing.T) {
	assert.Equal(t, EntityKey(5), EntityKey(5))
	assert.Equal(t, AttributeKey(5, "size").Encode(), AttributeKey(5, "size").Encode())
	assert.NotEqual(t, EntityKey(5).Encode(), AttributeKey(5, "size").Encode())
}
