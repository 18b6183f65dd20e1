package main

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml"

	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/tool"
)

func TestGenerateDefaultConfig(t *testing.T) {
	content, err := generateDefaultConfig()
	if err != nil {
		t.Fatalf("generateDefaultConfig failed: %v", err)
	}

	if !strings.HasPrefix(content, "# Chisel CLI Configuration") {
		t.Error("missing header comment")
	}

	var cfg config.Config
	body := content[strings.Index(content, "\n\n")+2:]
	if err := toml.Unmarshal([]byte(body), &cfg); err != nil {
		t.Fatalf("generated config does not round-trip: %v", err)
	}
	if !cfg.Exclude.Gitignore {
		t.Error("defaults lost in round-trip")
	}
}

func TestParamValue(t *testing.T) {
	if v := paramValue(tool.ParamDef{Type: tool.ParamTypeBool}, "true"); v != true {
		t.Errorf("bool param = %v", v)
	}
	if v := paramValue(tool.ParamDef{Type: tool.ParamTypeBool}, "false"); v != false {
		t.Errorf("bool param = %v", v)
	}

	list := paramValue(tool.ParamDef{Type: tool.ParamTypeList}, "py, js,").([]string)
	if len(list) != 2 || list[0] != "py" || list[1] != "js" {
		t.Errorf("list param = %v", list)
	}

	if v := paramValue(tool.ParamDef{Type: tool.ParamTypeString}, "hello"); v != "hello" {
		t.Errorf("string param = %v", v)
	}
}
