// Package csharp extracts NuGet package ids from .NET project files.
//
// [ProjectFile] reads <PackageReference Include="..."> items from SDK-style
// *.csproj files and <PackageVersion Include="..."> items from central
// package management files (Directory.Packages.props). [PackagesConfig]
// reads <package id="..."> entries from legacy packages.config files.
//
// Both are textual scans rather than MSBuild evaluation: conditions,
// imports and item transforms are not interpreted.
package csharp
