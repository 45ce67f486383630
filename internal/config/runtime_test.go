package config

import "testing"

func TestLoadRuntimeDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("EMBEDDING_PROVIDER", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("QDRANT_HOST", "")
	t.Setenv("QDRANT_PORT", "")

	rt := LoadRuntime()

	// an unset DATA_DIR must never fall through to the in-memory database
	if rt.DataDir != DefaultDataDir {
		t.Errorf("DataDir = %q, want %q", rt.DataDir, DefaultDataDir)
	}
	if rt.EmbeddingProvider != "google" {
		t.Errorf("EmbeddingProvider = %q, want google", rt.EmbeddingProvider)
	}
	if rt.RedisAddr != RedisAddr {
		t.Errorf("RedisAddr = %q, want %q", rt.RedisAddr, RedisAddr)
	}
	if rt.QdrantHost != QdrantHost {
		t.Errorf("QdrantHost = %q, want %q", rt.QdrantHost, QdrantHost)
	}
	if rt.QdrantPort != QdrantGrpcPort {
		t.Errorf("QdrantPort = %d, want %d", rt.QdrantPort, QdrantGrpcPort)
	}
}

func TestLoadRuntimeEnvOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("DATA_DIR", "/var/lib/govstack")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("QDRANT_HOST", "qdrant.internal")
	t.Setenv("QDRANT_PORT", "7334")

	rt := LoadRuntime()

	if rt.EmbeddingProvider != "openai" {
		t.Errorf("EmbeddingProvider = %q, want openai", rt.EmbeddingProvider)
	}
	if rt.DataDir != "/var/lib/govstack" {
		t.Errorf("DataDir = %q, want /var/lib/govstack", rt.DataDir)
	}
	if rt.RedisAddr != "redis:6380" {
		t.Errorf("RedisAddr = %q, want redis:6380", rt.RedisAddr)
	}
	if rt.QdrantHost != "qdrant.internal" {
		t.Errorf("QdrantHost = %q, want qdrant.internal", rt.QdrantHost)
	}
	if rt.QdrantPort != 7334 {
		t.Errorf("QdrantPort = %d, want 7334", rt.QdrantPort)
	}
}
