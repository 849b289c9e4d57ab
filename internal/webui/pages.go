// Package webui serves the two pages of the explorer: the method catalog
// and the per-method tool page. Pages are self-contained HTML documents with
// runtime values substituted into ${PLACEHOLDER} slots before serving, so no
// static files need to be checked into version control or shipped alongside
// the binary.
package webui

import (
	"html"
	"strconv"
	"strings"

	"github.com/CalleFreme/ai-methods-explorer/internal/workbench"
	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// RenderCatalog returns the catalog page. The method list itself is fetched
// by the page from /api/methods so the HTML never goes stale.
func RenderCatalog() string {
	return strings.ReplaceAll(catalogHTML, "${WORD_LIMIT}", strconv.Itoa(workbench.WordLimit))
}

// RenderTool returns the tool page for one method descriptor. The page's
// script mirrors the workbench truncation rules, marker token included, so
// the boundary drawn in the textarea matches what the service enforces.
func RenderTool(method models.MethodDescriptor) string {
	page := strings.ReplaceAll(toolHTML, "${METHOD_ID}", html.EscapeString(method.ID))
	page = strings.ReplaceAll(page, "${METHOD_NAME}", html.EscapeString(method.Name))
	page = strings.ReplaceAll(page, "${METHOD_DESCRIPTION}", html.EscapeString(method.Description))
	page = strings.ReplaceAll(page, "${MODEL_NAME}", html.EscapeString(method.ModelShortName()))
	page = strings.ReplaceAll(page, "${ENDPOINT}", html.EscapeString(method.Endpoint))
	page = strings.ReplaceAll(page, "${WORD_LIMIT}", strconv.Itoa(workbench.WordLimit))
	page = strings.ReplaceAll(page, "${MARKER}", workbench.TruncationMarker)
	return page
}

// RenderNotFound returns the page shown for an unknown method id. It sends
// the browser back to the catalog after two seconds, long enough to read the
// message.
func RenderNotFound(id string) string {
	return strings.ReplaceAll(notFoundHTML, "${METHOD_ID}", html.EscapeString(id))
}

const pageStyle = `
  body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #1f2933; }
  a { color: #2563eb; }
  .card { border: 1px solid #d0d7de; border-radius: 8px; padding: 1rem; margin: 0.75rem 0; }
  .card h2 { margin: 0 0 0.25rem 0; font-size: 1.1rem; }
  .model { color: #6b7280; font-size: 0.85rem; }
  .hidden { display: none; }
  .error { background: #fef2f2; border: 1px solid #f87171; color: #991b1b; padding: 0.75rem; border-radius: 6px; margin: 0.75rem 0; }
  .note { background: #fffbeb; border: 1px solid #fbbf24; color: #92400e; padding: 0.5rem 0.75rem; border-radius: 6px; margin: 0.5rem 0; font-size: 0.9rem; }
  textarea { width: 100%; box-sizing: border-box; font: inherit; padding: 0.5rem; border: 1px solid #d0d7de; border-radius: 6px; }
  button { background: #2563eb; color: white; border: 0; border-radius: 6px; padding: 0.5rem 1.25rem; font: inherit; cursor: pointer; margin: 0.5rem 0; }
  button:disabled { background: #93c5fd; cursor: wait; }
  .bar-track { background: #e5e7eb; border-radius: 4px; height: 12px; overflow: hidden; margin-top: 0.5rem; }
  .bar { height: 100%; }
  .bar.positive { background: #22c55e; }
  .bar.negative { background: #ef4444; }
  pre { background: #f6f8fa; padding: 0.75rem; border-radius: 6px; overflow-x: auto; }
`

const catalogHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>AI Methods Explorer</title>
  <style>` + pageStyle + `</style>
</head>
<body>
  <h1>AI Methods Explorer</h1>
  <p>Pick a text-analysis method, paste some text and see what the model makes of it.
     Inputs longer than ${WORD_LIMIT} words are truncated.</p>
  <div id="loading">Loading methods&hellip;</div>
  <div id="error" class="error hidden">Could not load methods. Please try again later.</div>
  <div id="methods"></div>
  <script>
  (function() {
    var list = document.getElementById("methods");
    var loading = document.getElementById("loading");
    var errorBox = document.getElementById("error");
    fetch("/api/methods")
      .then(function(resp) {
        if (!resp.ok) { throw new Error("status " + resp.status); }
        return resp.json();
      })
      .then(function(data) {
        loading.classList.add("hidden");
        data.methods.forEach(function(m) {
          var card = document.createElement("a");
          card.className = "card";
          card.style.display = "block";
          card.style.textDecoration = "none";
          card.style.color = "inherit";
          card.href = "/tools/" + encodeURIComponent(m.id);
          var title = document.createElement("h2");
          title.textContent = m.name;
          var desc = document.createElement("p");
          desc.textContent = m.description;
          var model = document.createElement("p");
          model.className = "model";
          model.textContent = "Model: " + m.model.split("/").pop();
          card.appendChild(title);
          card.appendChild(desc);
          card.appendChild(model);
          list.appendChild(card);
        });
      })
      .catch(function() {
        loading.classList.add("hidden");
        errorBox.classList.remove("hidden");
      });
  })();
  </script>
</body>
</html>`

const toolHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>${METHOD_NAME} - AI Methods Explorer</title>
  <style>` + pageStyle + `</style>
</head>
<body>
  <a href="/">&larr; All methods</a>
  <h1>${METHOD_NAME}</h1>
  <p>${METHOD_DESCRIPTION}</p>
  <p class="model">Model: ${MODEL_NAME}</p>
  <textarea id="text" rows="10" placeholder="Paste text here (up to ${WORD_LIMIT} words)"></textarea>
  <div id="limit-note" class="note hidden">Input exceeds ${WORD_LIMIT} words; only the first ${WORD_LIMIT} will be analyzed.</div>
  <button id="submit">Analyze</button>
  <div id="error" class="error hidden"></div>
  <div id="result" class="hidden"></div>
  <script>
  (function() {
    var endpoint = "${ENDPOINT}";
    var limit = ${WORD_LIMIT};
    var marker = "${MARKER}";
    var textarea = document.getElementById("text");
    var button = document.getElementById("submit");
    var note = document.getElementById("limit-note");
    var errorBox = document.getElementById("error");
    var resultBox = document.getElementById("result");

    function words(text) { return text.trim().split(/\s+/); }
    function strip(text) { return text.split(marker).join(""); }

    // Draw the truncation boundary in the textarea when the input runs over
    // the limit. The marker is display-only: it is stripped back out before
    // counting and before submission.
    textarea.addEventListener("input", function() {
      var stored = strip(textarea.value);
      var ws = words(stored);
      var over = ws.length > limit;
      note.classList.toggle("hidden", !over);
      var display = over ? ws.slice(0, limit).join(" ") + " " + marker + " " + ws.slice(limit).join(" ") : stored;
      if (display !== textarea.value) { textarea.value = display; }
    });

    button.addEventListener("click", function() {
      var raw = strip(textarea.value);
      if (raw.trim() === "") { return; }
      var truncated = words(raw).slice(0, limit).join(" ");
      button.disabled = true;
      errorBox.classList.add("hidden");
      resultBox.classList.add("hidden");
      fetch(endpoint, {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ text: truncated })
      })
        .then(function(resp) {
          if (resp.status === 413) { throw new Error("too-large"); }
          if (!resp.ok) { throw new Error("status " + resp.status); }
          return resp.json();
        })
        .then(render)
        .catch(function(err) {
          if (err.message === "too-large") {
            errorBox.textContent = "Text is too long. Please use a shorter text (maximum ${WORD_LIMIT} words).";
          } else {
            errorBox.textContent = "Failed to process text with ${METHOD_NAME}. Please try again.";
          }
          errorBox.classList.remove("hidden");
          // A failure keeps the previous result; only a fresh success
          // replaces it.
          if (resultBox.childNodes.length > 0) {
            resultBox.classList.remove("hidden");
          }
        })
        .finally(function() { button.disabled = false; });
    });

    function render(data) {
      resultBox.innerHTML = "";
      if (typeof data.result === "string") {
        var heading = document.createElement("h2");
        heading.textContent = "Summary";
        var body = document.createElement("p");
        body.textContent = data.result;
        resultBox.appendChild(heading);
        resultBox.appendChild(body);
      } else if (typeof data.sentiment === "string" && typeof data.score === "number") {
        var label = document.createElement("p");
        var pct = (data.score * 100).toFixed(2);
        label.textContent = data.sentiment + " (" + pct + "%)";
        var track = document.createElement("div");
        track.className = "bar-track";
        var bar = document.createElement("div");
        bar.className = "bar " + (data.sentiment.toLowerCase() === "positive" ? "positive" : "negative");
        bar.style.width = Math.min(100, Math.max(0, data.score * 100)) + "%";
        track.appendChild(bar);
        resultBox.appendChild(label);
        resultBox.appendChild(track);
      } else {
        var pre = document.createElement("pre");
        pre.textContent = JSON.stringify(data, null, 2);
        resultBox.appendChild(pre);
      }
      resultBox.classList.remove("hidden");
    }
  })();
  </script>
</body>
</html>`

const notFoundHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Method not found - AI Methods Explorer</title>
  <meta http-equiv="refresh" content="2;url=/" />
  <style>` + pageStyle + `</style>
</head>
<body>
  <h1>Method not found</h1>
  <p class="error">No method named "${METHOD_ID}" exists. Taking you back to the catalog&hellip;</p>
  <p><a href="/">Back to all methods</a></p>
</body>
</html>`
