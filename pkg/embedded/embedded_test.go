package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/scene.yaml": &fstest.MapFile{Data: []byte("window:\n  width: 640\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for nil FS")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
}

func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := Open("data/scene.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("data/scene.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/scene.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/scene.yaml", false},
		{"带 ./ 前缀", "./data/scene.yaml", false},
		{"未知前缀", "assets/scene.yaml", true},
		{"文件不存在", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Error("ReadFile returned empty data")
			}
		})
	}
}

func TestExistsAndStat(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/scene.yaml") {
		t.Error("Exists(data/scene.yaml) = false")
	}
	if Exists("data/other.yaml") {
		t.Error("Exists(data/other.yaml) = true")
	}

	info, err := Stat("data/scene.yaml")
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Name() != "scene.yaml" {
		t.Errorf("Name() = %q", info.Name())
	}
}
