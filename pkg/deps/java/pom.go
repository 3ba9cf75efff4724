package java

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/matzehuels/techradar/pkg/deps"
)

// POMParser parses Maven pom.xml files.
type POMParser struct{}

func (p *POMParser) Type() string              { return "pom.xml" }
func (p *POMParser) Patterns() []string        { return []string{"pom.xml"} }
func (p *POMParser) Supports(name string) bool { return name == "pom.xml" }

func (p *POMParser) Parse(path string, content []byte) ([]string, error) {
	var pom pomProject
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = false
	if err := dec.Decode(&pom); err != nil {
		return nil, err
	}
	return extractDependencies(&pom), nil
}

func extractDependencies(pom *pomProject) []string {
	lists := [][]pomDependency{pom.Dependencies, pom.DependencyManagement}
	for _, prof := range pom.Profiles {
		lists = append(lists, prof.Dependencies, prof.DependencyManagement)
	}

	var names []string
	for _, list := range lists {
		for _, dep := range list {
			group := strings.TrimSpace(dep.GroupID)
			artifact := strings.TrimSpace(dep.ArtifactID)
			if group == "" || artifact == "" {
				continue
			}
			names = append(names, group+":"+artifact)
		}
	}
	return deps.Unique(names)
}

type pomProject struct {
	GroupID              string          `xml:"groupId"`
	ArtifactID           string          `xml:"artifactId"`
	Parent               *pomParent      `xml:"parent"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
	Profiles             []pomProfile    `xml:"profiles>profile"`
}

type pomProfile struct {
	ID                   string          `xml:"id"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}
