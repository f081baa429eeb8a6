package validation

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout is the maximum time to wait for LaTeX compilation
const CompilationTimeout = 30 * time.Second

// CompileLaTeX writes source to resume.tex in workDir and compiles it with pdflatex.
// An empty workDir gets a fresh temporary directory, removed again when no PDF is produced;
// otherwise pass filepath.Dir(pdfPath) to CleanupCompilationArtifacts when done.
// The returned PDF path lives in workDir.
func CompileLaTeX(ctx context.Context, source string, workDir string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	if workDir == "" {
		workDir, err = os.MkdirTemp("", "latex-compile-*")
		if err != nil {
			return "", "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
		// Without a PDF the caller has nothing to clean up from
		tempDir := workDir
		defer func() {
			if pdfPath == "" {
				_ = os.RemoveAll(tempDir)
			}
		}()
	} else if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
			Cause:   err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	// nonstopmode keeps pdflatex from waiting on stdin
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	pdfPath = filepath.Join(workDir, "resume.pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can exit non-zero and still write a usable PDF
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// CleanupCompilationArtifacts removes a temporary compile directory, or the auxiliary
// files pdflatex leaves next to resume.tex in a caller-provided one.
func CleanupCompilationArtifacts(workDir string) error {
	if workDir == "" {
		return nil
	}

	if strings.Contains(filepath.Base(workDir), "latex-compile-") {
		return os.RemoveAll(workDir)
	}

	for _, ext := range []string{".aux", ".log", ".out"} {
		_ = os.Remove(filepath.Join(workDir, "resume"+ext))
	}
	return nil
}
