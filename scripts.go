package mdpreview

// MermaidScript renders the diagrams of mermaid code blocks.
const MermaidScript = `
<script id="mermaid-script" type="module">
    import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs";
    mermaid.initialize({ startOnLoad: false });
    await mermaid.run({ querySelector: ".mermaid" });
</script>
`

// CodeCopyScript adds a copy button to every code block.
const CodeCopyScript = `
<script id="code-copy-script" type="module">
    document.querySelectorAll("pre").forEach((pre) => {
        const code = pre.firstElementChild;
        if (!code || code.tagName !== "CODE") return;

        const button = document.createElement("button");
        button.innerHTML =
            '<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="copy-base"><rect width="14" height="14" x="8" y="8" rx="2" ry="2"/><path d="M4 16c-1.1 0-2-.9-2-2V4c0-1.1.9-2 2-2h10c1.1 0 2 .9 2 2"/></svg>' +
            '<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="green" stroke-width="3" stroke-linecap="round" stroke-linejoin="round" class="copy-success"><polyline points="20 6 9 17 4 12"/></svg>';
        button.className = "copy-button";
        pre.appendChild(button);

        button.addEventListener("click", () => {
            navigator.clipboard.writeText(code.textContent).then(() => {
                button.classList.add("success");
                setTimeout(() => button.classList.remove("success"), 1000);
            });
        });
    });
</script>
`
