package python

import (
	"slices"
	"testing"

	"github.com/matzehuels/techradar/pkg/deps"
)

func TestSupports(t *testing.T) {
	tests := []struct {
		parser   deps.ManifestParser
		filename string
		want     bool
	}{
		{&Requirements{}, "requirements.txt", true},
		{&Requirements{}, "requirements-dev.txt", true},
		{&Requirements{}, "Requirements.TXT", true},
		{&Requirements{}, "requirements.in", false},
		{&Requirements{}, "dev-requirements.txt", false},
		{&SetupPy{}, "setup.py", true},
		{&SetupPy{}, "setup.cfg", false},
		{&PyProject{}, "pyproject.toml", true},
		{&Pipfile{}, "Pipfile", true},
		{&Pipfile{}, "Pipfile.lock", false},
	}

	for _, tt := range tests {
		t.Run(tt.parser.Type()+"/"+tt.filename, func(t *testing.T) {
			if got := tt.parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		parser  deps.ManifestParser
		content string
		want    []string
	}{
		{
			name:   "requirements",
			parser: &Requirements{},
			content: `# web
Flask==3.0.0
requests[security]>=2.31 ; python_version >= "3.8"
zope.interface
-r base.txt
--index-url https://pypi.example.com/simple
git+https://github.com/org/pkg.git
https://example.com/pkg.tar.gz

numpy
Flask
`,
			want: []string{"Flask", "requests", "zope.interface", "numpy"},
		},
		{
			name:   "setup.py",
			parser: &SetupPy{},
			content: `from setuptools import setup
setup(
    name="demo",
    install_requires=[
        "click>=8",
        'rich',
        "pydantic[email]==2.5",
    ],
    extras_require={"dev": ["pytest"]},
)`,
			want: []string{"click", "rich", "pydantic"},
		},
		{
			name:    "setup.py without install_requires",
			parser:  &SetupPy{},
			content: `setup(name="demo")`,
			want:    nil,
		},
		{
			name:   "pyproject PEP 621",
			parser: &PyProject{},
			content: `[project]
name = "demo"
dependencies = [
  "fastapi>=0.100",
  "uvicorn[standard]",
]
[project.optional-dependencies]
test = ["pytest"]
`,
			want: []string{"fastapi", "uvicorn"},
		},
		{
			name:   "pyproject poetry",
			parser: &PyProject{},
			content: `[tool.poetry]
name = "demo"

[tool.poetry.dependencies]
python = "^3.11"
django = "^5.0"
celery = { version = "^5.3", extras = ["redis"] }

[tool.poetry.group.dev.dependencies]
pytest = "^8"

[tool.poetry.dev-dependencies]
black = "*"
`,
			want: []string{"django", "celery", "pytest", "black"},
		},
		{
			name:   "pyproject malformed falls back to scan",
			parser: &PyProject{},
			content: `[project
dependencies = ["httpx>=0.25", 'anyio']
`,
			want: []string{"httpx", "anyio"},
		},
		{
			name:    "setup.py extras first",
			parser:  &SetupPy{},
			content: `install_requires=['uvicorn[standard]', 'fastapi', 'sqlalchemy']`,
			want:    []string{"uvicorn", "fastapi", "sqlalchemy"},
		},
		{
			name:   "setup.py nested lists",
			parser: &SetupPy{},
			content: `setup(
    install_requires=["requests[socks,security]>=2", "pyyaml", ["not", "flat"]],
    classifiers=["Programming Language :: Python"],
)`,
			want: []string{"requests", "pyyaml", "not", "flat"},
		},
		{
			name:    "pyproject malformed with extras",
			parser:  &PyProject{},
			content: "[project\ndependencies = ['uvicorn[standard]', 'fastapi', \"pydantic[email]>=2\", 'rich']\n",
			want:    []string{"uvicorn", "fastapi", "pydantic", "rich"},
		},
		{
			name:   "pipfile",
			parser: &Pipfile{},
			content: `[[source]]
url = "https://pypi.org/simple"
verify_ssl = true
name = "pypi"

[packages]
requests = "*"
django = {version = ">=4"}

[dev-packages]
pytest = "*"

[requires]
python_version = "3.11"
`,
			want: []string{"requests", "django", "pytest"},
		},
		{
			name:   "pipfile malformed falls back to scan",
			parser: &Pipfile{},
			content: `[packages]
requests = "*"
flask = = "*"

[requires]
python_version = "3.11"
`,
			want: []string{"requests", "flask"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parser.Parse(tt.parser.Type(), []byte(tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !slices.Equal(got, tt.want)) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLanguageParsers(t *testing.T) {
	if Language.Name != "python" {
		t.Errorf("Name = %q, want python", Language.Name)
	}
	want := []string{"requirements*.txt", "setup.py", "pyproject.toml", "Pipfile"}
	if got := Language.Patterns(); !slices.Equal(got, want) {
		t.Errorf("Patterns() = %v, want %v", got, want)
	}
}
