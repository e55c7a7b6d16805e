package registrykit

import (
	"context"

	"github.com/vmihailenco/msgpack/v5"
)

// storage is the typed accessor over a KV. Every getter substitutes the
// documented default when the key is unset, so reads are well defined before
// the first write.
type storage struct {
	kv KV
}

func newStorage(kv KV) storage {
	return storage{kv: kv}
}

func (s storage) get(ctx context.Context, key Key, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, storageError("get "+string(key.Namespace()), err)
	}
	if !ok {
		return false, nil
	}
	if err := msgpack.Unmarshal(raw, dst); err != nil {
		return false, storageError("decode "+string(key.Namespace()), err)
	}
	return true, nil
}

func (s storage) set(ctx context.Context, key Key, v any) error {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return storageError("encode "+string(key.Namespace()), err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return storageError("set "+string(key.Namespace()), err)
	}
	return nil
}

// hasAdmin is the only existence check in the schema: it detects a prior Initialize.
func (s storage) hasAdmin(ctx context.Context) (bool, error) {
	ok, err := s.kv.Has(ctx, AdminKey())
	if err != nil {
		return false, storageError("has admin", err)
	}
	return ok, nil
}

func (s storage) setAdmin(ctx context.Context, admin Address) error {
	return s.set(ctx, AdminKey(), string(admin))
}

func (s storage) nextEntityID(ctx context.Context) (uint32, error) {
	var id uint32
	ok, err := s.get(ctx, NextEntityIDKey(), &id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return id, nil
}

func (s storage) setNextEntityID(ctx context.Context, id uint32) error {
	return s.set(ctx, NextEntityIDKey(), id)
}

func (s storage) entity(ctx context.Context, id uint32) (*Entity, bool, error) {
	var e Entity
	ok, err := s.get(ctx, EntityKey(id), &e)
	if err != nil || !ok {
		return nil, false, err
	}
	return &e, true, nil
}

func (s storage) setEntity(ctx context.Context, e *Entity) error {
	return s.set(ctx, EntityKey(e.ID), e)
}

func (s storage) entityList(ctx context.Context) ([]uint32, error) {
	var ids []uint32
	if _, err := s.get(ctx, EntityListKey(), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint32{}
	}
	return ids, nil
}

func (s storage) setEntityList(ctx context.Context, ids []uint32) error {
	return s.set(ctx, EntityListKey(), ids)
}

func (s storage) role(ctx context.Context, addr Address) (Role, error) {
	role := RoleNone
	if _, err := s.get(ctx, RoleKey(addr), &role); err != nil {
		return RoleNone, err
	}
	return role, nil
}

func (s storage) setRole(ctx context.Context, addr Address, role Role) error {
	return s.set(ctx, RoleKey(addr), role)
}

// text reads a config entry or attribute; unset keys read as "".
func (s storage) text(ctx context.Context, key Key) (string, error) {
	var v string
	if _, err := s.get(ctx, key, &v); err != nil {
		return "", err
	}
	return v, nil
}

func (s storage) setText(ctx context.Context, key Key, value string) error {
	return s.set(ctx, key, value)
}
