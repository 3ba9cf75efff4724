// Package java extracts Maven coordinates from Maven and Gradle builds.
//
// # Maven
//
// [POMParser] decodes pom.xml as a document tree and reads each <dependency>
// element on its own, pairing the groupId and artifactId children of the
// same element into "groupId:artifactId". Dependencies are collected from
// the project, its dependencyManagement section and every profile. The
// parent POM and plugin coordinates are not dependencies and are ignored.
// All scopes are kept: a test-only library is still a technology in use.
//
// Property references such as ${project.groupId} are kept verbatim; a
// dependency missing either coordinate is dropped.
//
// # Gradle
//
// [GradleParser] scans build.gradle and build.gradle.kts for quoted
// "group:artifact[:version]" strings and for the map notation
// group: 'g', name: 'a'.
package java
